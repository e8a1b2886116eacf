package user

import (
	"cmp"
	"context"
	"slices"
	"strconv"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/janisto/huma-users/internal/platform/timeutil"
)

const (
	usersCollection    = "users"
	countersCollection = "counters"
	nextIDField        = "next_id"
)

// firestoreUser maps to the Firestore document structure.
type firestoreUser struct {
	ID          int64     `firestore:"id"`
	Email       string    `firestore:"email"`
	FirstName   string    `firestore:"first_name"`
	LastName    string    `firestore:"last_name"`
	BirthDate   time.Time `firestore:"birth_date"`
	Address     string    `firestore:"address"`
	PhoneNumber string    `firestore:"phone_number"`
}

func toFirestoreUser(r Record) firestoreUser {
	return firestoreUser{
		ID:          r.ID,
		Email:       r.Email,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		BirthDate:   timeutil.DateOf(r.BirthDate),
		Address:     r.Address,
		PhoneNumber: r.PhoneNumber,
	}
}

func (u firestoreUser) record() Record {
	return Record{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		BirthDate:   timeutil.DateOf(u.BirthDate),
		Address:     u.Address,
		PhoneNumber: u.PhoneNumber,
	}
}

// FirestoreStore implements Store using Firestore. Ids come from a counter
// document incremented in the same transaction that creates the user.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) doc(id int64) *firestore.DocumentRef {
	return s.client.Collection(usersCollection).Doc(strconv.FormatInt(id, 10))
}

// Create allocates the next id and writes the user atomically.
func (s *FirestoreStore) Create(ctx context.Context, r Record) (*Record, error) {
	counterRef := s.client.Collection(countersCollection).Doc(usersCollection)

	var result Record
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var lastID int64
		snap, err := tx.Get(counterRef)
		switch {
		case err == nil:
			v, err := snap.DataAt(nextIDField)
			if err != nil {
				return err
			}
			if n, ok := v.(int64); ok {
				lastID = n
			}
		case status.Code(err) != codes.NotFound:
			return err
		}

		r.ID = lastID + 1
		if err := tx.Set(counterRef, map[string]any{nextIDField: r.ID}); err != nil {
			return err
		}
		fu := toFirestoreUser(r)
		if err := tx.Create(s.doc(r.ID), fu); err != nil {
			return err
		}
		result = fu.record()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Get retrieves a user by id.
func (s *FirestoreStore) Get(ctx context.Context, id int64) (*Record, error) {
	snap, err := s.doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, &NotFoundError{ID: id}
		}
		return nil, err
	}
	var fu firestoreUser
	if err := snap.DataTo(&fu); err != nil {
		return nil, err
	}
	r := fu.record()
	return &r, nil
}

// Save overwrites an existing user inside a transaction.
func (s *FirestoreStore) Save(ctx context.Context, r Record) (*Record, error) {
	ref := s.doc(r.ID)
	fu := toFirestoreUser(r)

	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			if status.Code(err) == codes.NotFound {
				return &NotFoundError{ID: r.ID}
			}
			return err
		}
		return tx.Set(ref, fu)
	})
	if err != nil {
		return nil, err
	}
	saved := fu.record()
	return &saved, nil
}

// Delete removes a user inside a transaction to ensure it exists.
func (s *FirestoreStore) Delete(ctx context.Context, id int64) error {
	ref := s.doc(id)
	return s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			if status.Code(err) == codes.NotFound {
				return &NotFoundError{ID: id}
			}
			return err
		}
		return tx.Delete(ref)
	})
}

// FindByBirthDateBetween runs a range query on birth_date. Firestore cannot
// order by a second field without a composite index, so results are sorted here.
func (s *FirestoreStore) FindByBirthDateBetween(ctx context.Context, from, to time.Time) ([]Record, error) {
	snaps, err := s.client.Collection(usersCollection).
		Where("birth_date", ">=", timeutil.DateOf(from)).
		Where("birth_date", "<=", timeutil.DateOf(to)).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, err
	}
	out, err := decodeUsers(snaps)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(out, func(a, b Record) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

// List returns a keyset page ordered by id.
func (s *FirestoreStore) List(ctx context.Context, afterID int64, limit int) ([]Record, error) {
	q := s.client.Collection(usersCollection).
		Where("id", ">", afterID).
		OrderBy("id", firestore.Asc)
	if limit > 0 {
		q = q.Limit(limit)
	}
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	return decodeUsers(snaps)
}

// Ping issues a minimal read against the users collection.
func (s *FirestoreStore) Ping(ctx context.Context) error {
	_, err := s.client.Collection(usersCollection).Limit(1).Documents(ctx).GetAll()
	return err
}

func decodeUsers(snaps []*firestore.DocumentSnapshot) ([]Record, error) {
	out := make([]Record, 0, len(snaps))
	for _, snap := range snaps {
		var fu firestoreUser
		if err := snap.DataTo(&fu); err != nil {
			return nil, err
		}
		out = append(out, fu.record())
	}
	return out, nil
}

// Compile-time interface check
var _ Store = (*FirestoreStore)(nil)
