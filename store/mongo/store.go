// Package mongo provides a MongoDB storage driver backed by Grove ORM.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	pyebwa "github.com/pyebwa/pyebwa"
	"github.com/pyebwa/pyebwa/evidence"
	"github.com/pyebwa/pyebwa/participant"
	"github.com/pyebwa/pyebwa/planter"
	"github.com/pyebwa/pyebwa/pool"
	pyebwastore "github.com/pyebwa/pyebwa/store"
)

// Collection name constants.
const (
	colPool         = "pyebwa_pool"
	colParticipants = "pyebwa_participants"
	colPlanters     = "pyebwa_planters"
	colEvidence     = "pyebwa_evidence"
)

// compile-time interface check
var _ pyebwastore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for all collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("pyebwa/mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Pool Store ====================

func (s *Store) CreatePool(ctx context.Context, p *pool.Pool) error {
	var existing poolModel
	err := s.mdb.NewFind(&existing).
		Filter(bson.M{"_id": poolSingleton}).
		Scan(ctx)
	if err == nil {
		return pyebwa.ErrPoolExists
	}
	if !isNoDocuments(err) {
		return fmt.Errorf("pyebwa/mongo: check pool: %w", err)
	}

	m := toPoolModel(p)
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("pyebwa/mongo: create pool: %w", err)
	}
	return nil
}

func (s *Store) GetPool(ctx context.Context) (*pool.Pool, error) {
	var m poolModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": poolSingleton}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, pyebwa.ErrPoolNotInitialized
		}
		return nil, fmt.Errorf("pyebwa/mongo: get pool: %w", err)
	}
	return fromPoolModel(&m)
}

func (s *Store) UpdatePool(ctx context.Context, p *pool.Pool) error {
	m := toPoolModel(p)
	m.UpdatedAt = now()

	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": poolSingleton}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("pyebwa/mongo: update pool: %w", err)
	}
	if res.MatchedCount() == 0 {
		return pyebwa.ErrPoolNotInitialized
	}
	return nil
}

// ==================== Participant Store ====================

func (s *Store) CreateParticipant(ctx context.Context, p *participant.Participant) error {
	m := toParticipantModel(p)
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return pyebwa.ErrAlreadyExists
		}
		return fmt.Errorf("pyebwa/mongo: create participant: %w", err)
	}
	return nil
}

func (s *Store) GetParticipant(ctx context.Context, owner string) (*participant.Participant, error) {
	var m participantModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": owner}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, pyebwa.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("pyebwa/mongo: get participant: %w", err)
	}
	return fromParticipantModel(&m)
}

func (s *Store) UpdateParticipant(ctx context.Context, p *participant.Participant) error {
	m := toParticipantModel(p)
	m.UpdatedAt = now()

	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.Owner}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("pyebwa/mongo: update participant: %w", err)
	}
	if res.MatchedCount() == 0 {
		return pyebwa.ErrParticipantNotFound
	}
	return nil
}

func (s *Store) ListParticipants(ctx context.Context, opts participant.ListOpts) ([]*participant.Participant, error) {
	var models []participantModel

	q := s.mdb.NewFind(&models).
		Filter(bson.M{}).
		Sort(bson.D{{Key: "_id", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("pyebwa/mongo: list participants: %w", err)
	}

	result := make([]*participant.Participant, len(models))
	for i := range models {
		p, err := fromParticipantModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = p
	}
	return result, nil
}

// ==================== Planter Store ====================

func (s *Store) CreatePlanter(ctx context.Context, p *planter.Planter) error {
	m := toPlanterModel(p)
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return pyebwa.ErrAlreadyExists
		}
		return fmt.Errorf("pyebwa/mongo: create planter: %w", err)
	}
	return nil
}

func (s *Store) GetPlanter(ctx context.Context, owner string) (*planter.Planter, error) {
	var m planterModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": owner}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, pyebwa.ErrPlanterNotFound
		}
		return nil, fmt.Errorf("pyebwa/mongo: get planter: %w", err)
	}
	return fromPlanterModel(&m)
}

func (s *Store) UpdatePlanter(ctx context.Context, p *planter.Planter) error {
	m := toPlanterModel(p)
	m.UpdatedAt = now()

	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.Owner}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("pyebwa/mongo: update planter: %w", err)
	}
	if res.MatchedCount() == 0 {
		return pyebwa.ErrPlanterNotFound
	}
	return nil
}

func (s *Store) ListPlanters(ctx context.Context, opts planter.ListOpts) ([]*planter.Planter, error) {
	var models []planterModel

	filter := bson.M{}
	if opts.VerifiedOnly {
		filter["verified"] = true
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "_id", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("pyebwa/mongo: list planters: %w", err)
	}

	result := make([]*planter.Planter, len(models))
	for i := range models {
		p, err := fromPlanterModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = p
	}
	return result, nil
}

// ==================== Evidence Store ====================

func (s *Store) CreateEvidence(ctx context.Context, r *evidence.Record) error {
	m := toEvidenceModel(r)
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return pyebwa.ErrAlreadyExists
		}
		return fmt.Errorf("pyebwa/mongo: create evidence: %w", err)
	}
	return nil
}

func (s *Store) GetEvidence(ctx context.Context, planterOwner string, sequence uint32) (*evidence.Record, error) {
	var m evidenceModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"planter": planterOwner, "sequence": sequence}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, pyebwa.ErrEvidenceNotFound
		}
		return nil, fmt.Errorf("pyebwa/mongo: get evidence: %w", err)
	}
	return fromEvidenceModel(&m)
}

func (s *Store) UpdateEvidence(ctx context.Context, r *evidence.Record) error {
	m := toEvidenceModel(r)
	m.UpdatedAt = now()

	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("pyebwa/mongo: update evidence: %w", err)
	}
	if res.MatchedCount() == 0 {
		return pyebwa.ErrEvidenceNotFound
	}
	return nil
}

func (s *Store) ListEvidenceByPlanter(ctx context.Context, planterOwner string, opts evidence.ListOpts) ([]*evidence.Record, error) {
	var models []evidenceModel

	filter := bson.M{"planter": planterOwner}
	if opts.UnverifiedOnly {
		filter["verified"] = false
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "sequence", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("pyebwa/mongo: list evidence: %w", err)
	}

	result := make([]*evidence.Record, len(models))
	for i := range models {
		r, err := fromEvidenceModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = r
	}
	return result, nil
}

// ==================== Helpers ====================

func now() time.Time {
	return time.Now().UTC()
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// migrationIndexes returns the index definitions for all collections.
func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colPool: nil,
		colParticipants: {
			{Keys: bson.D{{Key: "created_at", Value: 1}}},
		},
		colPlanters: {
			{Keys: bson.D{{Key: "verified", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: 1}}},
		},
		colEvidence: {
			{
				Keys:    bson.D{{Key: "planter", Value: 1}, {Key: "sequence", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "planter", Value: 1}, {Key: "verified", Value: 1}}},
		},
	}
}
