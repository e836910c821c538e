package praise

import (
	"github.com/iov-one/shine"
	"github.com/iov-one/shine/errors"
	"github.com/iov-one/shine/gconf"
	"github.com/iov-one/shine/orm"
)

// Observer is notified about ledger changes that invalidate data derived
// from the ledger. It runs within the same transaction.
type Observer interface {
	// OnReset is called when all activity is cleared.
	OnReset(db shine.KVStore) error
	// OnUnbind is called when a member loses its account binding.
	OnUnbind(db shine.KVStore, member MemberID) error
}

// Ledger keeps the activity counters of all members, the posts and votes
// they are derived from and the member account bindings.
type Ledger struct {
	posts     orm.ModelBucket
	votes     orm.ModelBucket
	seen      orm.ModelBucket
	stats     orm.ModelBucket
	accounts  orm.ModelBucket
	observers []Observer
	reserved  []shine.Address
}

// NewLedger returns a ledger notifying given observers.
func NewLedger(observers ...Observer) *Ledger {
	return &Ledger{
		posts:     NewPostBucket(),
		votes:     NewVoteBucket(),
		seen:      NewSeenBucket(),
		stats:     NewStatBucket(),
		accounts:  NewAccountBucket(),
		observers: observers,
	}
}

// Subscribe registers an observer.
func (l *Ledger) Subscribe(o Observer) {
	l.observers = append(l.observers, o)
}

// Reserve excludes addresses from account bindings, for example an account
// owned by another extension.
func (l *Ledger) Reserve(addrs ...shine.Address) {
	l.reserved = append(l.reserved, addrs...)
}

// IsReserved returns true if the address cannot be bound to a member.
func (l *Ledger) IsReserved(addr shine.Address) bool {
	for _, r := range l.reserved {
		if r.Equals(addr) {
			return true
		}
	}
	return false
}

// RecordPost stores a new post and returns its id. The author is credited
// with a posted praise and the recipient with an implicit vote.
func (l *Ledger) RecordPost(db shine.KVStore, author, recipient MemberID, note string) (uint64, error) {
	if _, err := LoadConfiguration(db); err != nil {
		return 0, err
	}
	id, err := l.posts.Sequence(orm.SeqID).NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "post id")
	}
	post := Post{ID: id, Author: author, Recipient: recipient, Note: note}
	if _, err := l.posts.Put(db, PostKey(id), &post); err != nil {
		return 0, errors.Wrap(err, "cannot store post")
	}
	if err := l.Increment(db, author, PraisePosted, 1); err != nil {
		return 0, err
	}
	if err := l.Increment(db, recipient, VoteReceivedImplicit, 1); err != nil {
		return 0, err
	}
	return id, nil
}

// RecordVote stores a vote for an existing post. A voter can vote for a
// post only once, ErrAlreadyVoted is returned for a repeated vote and the
// state is not modified.
func (l *Ledger) RecordVote(db shine.KVStore, postID uint64, voter MemberID) error {
	if _, err := LoadConfiguration(db); err != nil {
		return err
	}
	post, err := l.Post(db, postID)
	if err != nil {
		return err
	}

	voted, err := l.HasVoted(db, postID, voter)
	if err != nil {
		return err
	}
	if voted {
		return errors.Wrap(ErrAlreadyVoted, "voter already voted for that post")
	}
	guard := GuardKey(postID, voter)
	if _, err := l.seen.Put(db, guard, &Seen{PostID: postID, Voter: voter}); err != nil {
		return errors.Wrap(err, "cannot store vote guard")
	}
	if _, err := l.votes.Put(db, nil, &Vote{PostID: postID, Voter: voter}); err != nil {
		return errors.Wrap(err, "cannot store vote")
	}

	if err := l.Increment(db, voter, VoteGivenExplicit, 1); err != nil {
		return err
	}
	if err := l.Increment(db, post.Recipient, VoteReceivedExplicit, 1); err != nil {
		return err
	}
	return l.Increment(db, post.Author, PraiseVoteReceived, 1)
}

// HasVoted returns true if the voter already voted for the post.
func (l *Ledger) HasVoted(db shine.ReadOnlyKVStore, postID uint64, voter MemberID) (bool, error) {
	switch err := l.seen.Has(db, GuardKey(postID, voter)); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, errors.Wrap(err, "vote guard")
	}
}

// Post returns the post with given id.
func (l *Ledger) Post(db shine.ReadOnlyKVStore, id uint64) (*Post, error) {
	var post Post
	if err := l.posts.One(db, PostKey(id), &post); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrap(errors.ErrNotFound, "post with this id does not exist")
		}
		return nil, errors.Wrap(err, "cannot load post")
	}
	return &post, nil
}

// Votes returns all votes given to a post.
func (l *Ledger) Votes(db shine.ReadOnlyKVStore, postID uint64) ([]*Vote, error) {
	var votes []*Vote
	if _, err := l.votes.ByIndex(db, "post", PostKey(postID), &votes); err != nil {
		return nil, errors.Wrap(err, "cannot load votes")
	}
	return votes, nil
}

// Increment adds delta to a single counter of the member. The counters
// record is created on the first increment.
func (l *Ledger) Increment(db shine.KVStore, member MemberID, c Category, delta uint64) error {
	if err := member.Validate(); err != nil {
		return err
	}
	key, stat, err := l.stat(db, member)
	if err != nil {
		return err
	}
	updated, err := stat.Incremented(c, delta)
	if err != nil {
		return err
	}
	if _, err := l.stats.Put(db, key, &updated); err != nil {
		return errors.Wrapf(err, "cannot store %s stat", c)
	}
	return nil
}

// Stat returns the counters of the member. A member without any activity
// has all counters set to zero.
func (l *Ledger) Stat(db shine.ReadOnlyKVStore, member MemberID) (*MemberStat, error) {
	_, stat, err := l.stat(db, member)
	return stat, err
}

// stat returns the key and the counters of a member. The key is nil if the
// member has no record yet.
func (l *Ledger) stat(db shine.ReadOnlyKVStore, member MemberID) ([]byte, *MemberStat, error) {
	var found []*MemberStat
	keys, err := l.stats.ByIndex(db, "member", member, &found)
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot load member stat")
	}
	if len(found) == 0 {
		return nil, &MemberStat{Member: member}, nil
	}
	return keys[0], found[0], nil
}

// Stats calls fn for the counters of every member, in the order the
// members were first recorded.
func (l *Ledger) Stats(db shine.KVStore, fn func(*MemberStat) error) error {
	return l.stats.Iterate(db, func(key []byte, m orm.Model) error {
		s, ok := m.(*MemberStat)
		if !ok {
			return errors.Wrapf(errors.ErrType, "%T", m)
		}
		return fn(s)
	})
}

// Reset clears all posts, votes and counters. Bindings and the
// configuration are preserved. Post ids are never reused.
func (l *Ledger) Reset(db shine.KVStore) error {
	for _, b := range []orm.ModelBucket{l.posts, l.votes, l.seen, l.stats} {
		if err := b.Truncate(db); err != nil {
			return errors.Wrap(err, "truncate")
		}
	}
	for _, o := range l.observers {
		if err := o.OnReset(db); err != nil {
			return errors.Wrap(err, "reset observer")
		}
	}
	return nil
}

// Purge resets the ledger and additionally removes all account bindings
// and the configuration. The admin is kept.
func (l *Ledger) Purge(db shine.KVStore) error {
	if err := l.Reset(db); err != nil {
		return err
	}
	if err := l.accounts.Truncate(db); err != nil {
		return errors.Wrap(err, "truncate accounts")
	}
	if err := gconf.Delete(db, ConfigPkg); err != nil {
		return errors.Wrap(err, "delete configuration")
	}
	return nil
}

// BindMember binds the member to the address. Both sides of the binding
// are unique: an address bound to another member is taken over and the
// previous address of the member is released.
func (l *Ledger) BindMember(db shine.KVStore, member MemberID, addr shine.Address) error {
	binding := AccountBinding{Member: member, Address: addr}
	if err := binding.Validate(); err != nil {
		return err
	}
	if l.IsReserved(addr) {
		return errors.Wrapf(errors.ErrInput, "address %s is reserved", addr)
	}

	switch current, err := l.MemberByAddress(db, addr); {
	case err == nil:
		if current.Equals(member) {
			return nil
		}
		if err := l.UnbindMember(db, current); err != nil {
			return errors.Wrap(err, "release address")
		}
	case errors.ErrNotFound.Is(err):
	default:
		return err
	}

	if _, err := l.accounts.Put(db, member, &binding); err != nil {
		return errors.Wrap(err, "cannot store binding")
	}
	return nil
}

// UnbindMember removes the binding of the member. ErrNotFound is returned
// if the member is not bound.
func (l *Ledger) UnbindMember(db shine.KVStore, member MemberID) error {
	if err := l.accounts.Delete(db, member); err != nil {
		return errors.Wrap(err, "unbind")
	}
	for _, o := range l.observers {
		if err := o.OnUnbind(db, member); err != nil {
			return errors.Wrap(err, "unbind observer")
		}
	}
	return nil
}

// Binding returns the address the member is bound to. ErrNotFound is
// returned if the member is not bound.
func (l *Ledger) Binding(db shine.ReadOnlyKVStore, member MemberID) (shine.Address, error) {
	var b AccountBinding
	if err := l.accounts.One(db, member, &b); err != nil {
		return nil, err
	}
	return b.Address, nil
}

// MemberByAddress returns the member bound to the address. ErrNotFound is
// returned if the address is not bound.
func (l *Ledger) MemberByAddress(db shine.ReadOnlyKVStore, addr shine.Address) (MemberID, error) {
	var found []*AccountBinding
	if _, err := l.accounts.ByIndex(db, "address", addr, &found); err != nil {
		return nil, errors.Wrap(err, "cannot load binding")
	}
	if len(found) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "address %s is not bound", addr)
	}
	return found[0].Member, nil
}
