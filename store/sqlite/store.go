package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
	"github.com/xraph/grove/migrate"

	"github.com/pyebwa/pyebwa"
	"github.com/pyebwa/pyebwa/evidence"
	"github.com/pyebwa/pyebwa/participant"
	"github.com/pyebwa/pyebwa/planter"
	"github.com/pyebwa/pyebwa/pool"
	pyebwastore "github.com/pyebwa/pyebwa/store"
)

// compile-time interface check
var _ pyebwastore.Store = (*Store)(nil)

// Store implements store.Store using SQLite via Grove ORM.
type Store struct {
	db  *grove.DB
	sdb *sqlitedriver.SqliteDB
}

// New creates a new SQLite store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		sdb: sqlitedriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.sdb)
	if err != nil {
		return fmt.Errorf("pyebwa/sqlite: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("pyebwa/sqlite: migration failed: %w", err)
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
	existing := new(poolModel)
	err := s.sdb.NewSelect(existing).Where("singleton = ?", poolSingleton).Scan(ctx)
	if err == nil {
		return pyebwa.ErrPoolExists
	}
	if !isNoRows(err) {
		return err
	}

	m := toPoolModel(p)
	_, err = s.sdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetPool(ctx context.Context) (*pool.Pool, error) {
	m := new(poolModel)
	err := s.sdb.NewSelect(m).Where("singleton = ?", poolSingleton).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, pyebwa.ErrPoolNotInitialized
		}
		return nil, err
	}
	return fromPoolModel(m)
}

func (s *Store) UpdatePool(ctx context.Context, p *pool.Pool) error {
	m := toPoolModel(p)
	res, err := s.sdb.NewUpdate(m).Where("singleton = ?", poolSingleton).Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return pyebwa.ErrPoolNotInitialized
	}
	return nil
}

// ==================== Participant Store ====================

func (s *Store) CreateParticipant(ctx context.Context, p *participant.Participant) error {
	m := toParticipantModel(p)
	_, err := s.sdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetParticipant(ctx context.Context, owner string) (*participant.Participant, error) {
	m := new(participantModel)
	err := s.sdb.NewSelect(m).Where("owner = ?", owner).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, pyebwa.ErrParticipantNotFound
		}
		return nil, err
	}
	return fromParticipantModel(m)
}

func (s *Store) UpdateParticipant(ctx context.Context, p *participant.Participant) error {
	m := toParticipantModel(p)
	res, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return pyebwa.ErrParticipantNotFound
	}
	return nil
}

func (s *Store) ListParticipants(ctx context.Context, opts participant.ListOpts) ([]*participant.Participant, error) {
	var models []participantModel
	q := s.sdb.NewSelect(&models)

	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("owner ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
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
	_, err := s.sdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetPlanter(ctx context.Context, owner string) (*planter.Planter, error) {
	m := new(planterModel)
	err := s.sdb.NewSelect(m).Where("owner = ?", owner).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, pyebwa.ErrPlanterNotFound
		}
		return nil, err
	}
	return fromPlanterModel(m)
}

func (s *Store) UpdatePlanter(ctx context.Context, p *planter.Planter) error {
	m := toPlanterModel(p)
	res, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return pyebwa.ErrPlanterNotFound
	}
	return nil
}

func (s *Store) ListPlanters(ctx context.Context, opts planter.ListOpts) ([]*planter.Planter, error) {
	var models []planterModel
	q := s.sdb.NewSelect(&models)

	if opts.VerifiedOnly {
		q = q.Where("verified = ?", true)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("owner ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
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
	_, err := s.sdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetEvidence(ctx context.Context, planterOwner string, sequence uint32) (*evidence.Record, error) {
	m := new(evidenceModel)
	err := s.sdb.NewSelect(m).
		Where("planter = ?", planterOwner).
		Where("sequence = ?", int64(sequence)).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, pyebwa.ErrEvidenceNotFound
		}
		return nil, err
	}
	return fromEvidenceModel(m)
}

func (s *Store) UpdateEvidence(ctx context.Context, r *evidence.Record) error {
	m := toEvidenceModel(r)
	res, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return pyebwa.ErrEvidenceNotFound
	}
	return nil
}

func (s *Store) ListEvidenceByPlanter(ctx context.Context, planterOwner string, opts evidence.ListOpts) ([]*evidence.Record, error) {
	var models []evidenceModel
	q := s.sdb.NewSelect(&models).Where("planter = ?", planterOwner)

	if opts.UnverifiedOnly {
		q = q.Where("verified = ?", false)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("sequence ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
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

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
