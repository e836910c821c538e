/*
Package praise implements the activity ledger.

Members post praise for other members and vote for existing posts. Every
action increments the counters of the members involved:

	post:  author.PraisePosted, recipient.VoteReceivedImplicit
	vote:  voter.VoteGivenExplicit, recipient.VoteReceivedExplicit,
	       author.PraiseVoteReceived

A voter can vote for a post only once. Members are bound to the account
their rewards are paid to. Actions are signed either by the configured
operator, relaying actions of chat users, or by the member account.
*/
package praise
