package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propertyflow/propertyflow/internal/domain"
)

// Store owns the process-wide connection pool and the per-aggregate repos.
// It is created once at startup and injected; endpoints never build pools.
type Store struct {
	pool         *pgxpool.Pool
	users        *UserRepo
	properties   *PropertyRepo
	reservations *ReservationRepo
	departments  *DepartmentRepo
	smartViews   *SmartViewRepo
	permissions  *PermissionRepo
}

func New(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	return &Store{
		pool:         pool,
		users:        NewUserRepo(pool),
		properties:   NewPropertyRepo(pool),
		reservations: NewReservationRepo(pool),
		departments:  NewDepartmentRepo(pool),
		smartViews:   NewSmartViewRepo(pool),
		permissions:  NewPermissionRepo(pool),
	}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Users() domain.UserRepository               { return s.users }
func (s *Store) Properties() domain.PropertyRepository      { return s.properties }
func (s *Store) Reservations() domain.ReservationRepository { return s.reservations }
func (s *Store) Departments() domain.DepartmentRepository   { return s.departments }
func (s *Store) SmartViews() domain.SmartViewRepository     { return s.smartViews }
func (s *Store) Permissions() domain.PermissionRepository   { return s.permissions }
