/*
Package distribution splits a deposited pot among the members of the praise
ledger.

Each member's share is the sum of three categories, each a ratio of the
member's counters to the global totals, scaled by the pot and the category
weight:

	vote received   (implicit + explicit votes received) / vote total
	praise posted   votes received by the member's posts / explicit vote total
	vote given      n * tier(n) / sum of m * tier(m) over all members

where n is the number of explicit votes the member gave and tier is a step
function rewarding the first votes more than later ones. All arithmetic is
exact and each category amount is truncated toward zero. Only members bound
to an account are paid. The rounding residue, together with the amounts
computed for unbound members, is reassigned to the bound members so that
the whole pot is always paid out.

A distribution is triggered by a cash transfer to PotAccount in the
configured currency. Each distribution replaces the reward table.
*/
package distribution
