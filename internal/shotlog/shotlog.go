// Package shotlog persists simulated shots to a local sqlite database.
package shotlog

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/ironsight-data/ironsight/internal/monitoring"
	"github.com/ironsight-data/ironsight/internal/swing"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Shot is one recorded swing with its derived launch and flight.
type Shot struct {
	ID       string
	StruckAt time.Time
	Swing    swing.ClubMeasurement
	Launch   swing.BallLaunch
	Flight   swing.TrajectoryResult
}

// Store is a sqlite-backed shot log. Safe for concurrent use; the
// underlying pool serialises writers.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the shot database at path and applies
// any pending schema migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open shot database: %w", err)
	}

	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// migrateUp applies the embedded migrations. Running against an
// up-to-date database is a no-op.
func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("load embedded migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	m.Log = &migrateLogger{}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// migrateLogger routes migrate output through the package logger.
type migrateLogger struct{}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	monitoring.Logf("[migrate] "+format, v...)
}

func (l *migrateLogger) Verbose() bool { return false }

// Record stores a shot, assigning it a fresh ID. StruckAt defaults to
// now when unset. Returns the assigned ID.
func (s *Store) Record(shot Shot) (string, error) {
	id := uuid.NewString()
	struckAt := shot.StruckAt
	if struckAt.IsZero() {
		struckAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO shots (
			id, struck_at, club,
			club_speed_mph, face_angle_deg, path_deg, contact_point,
			ball_speed_mph, vla_deg, hla_deg, backspin_rpm, spin_axis_deg,
			carry_yards, total_yards, apex_yards, lateral_yards, flight_time_s
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, struckAt, string(shot.Swing.Club),
		shot.Swing.SpeedMPH, shot.Swing.FaceAngleDeg, shot.Swing.PathDeg, shot.Swing.ContactPoint,
		shot.Launch.BallSpeedMPH, shot.Launch.VLADeg, shot.Launch.HLADeg,
		shot.Launch.BackspinRPM, shot.Launch.SpinAxisDeg,
		shot.Flight.CarryYards, shot.Flight.TotalYards, shot.Flight.ApexYards,
		shot.Flight.LateralYards, shot.Flight.FlightTimeS,
	)
	if err != nil {
		return "", fmt.Errorf("record shot: %w", err)
	}
	return id, nil
}

// Recent returns the n most recently struck shots, newest first. The
// trajectory point sequence is not persisted, only the summary numbers.
func (s *Store) Recent(n int) ([]Shot, error) {
	rows, err := s.db.Query(`
		SELECT id, struck_at, club,
			club_speed_mph, face_angle_deg, path_deg, contact_point,
			ball_speed_mph, vla_deg, hla_deg, backspin_rpm, spin_axis_deg,
			carry_yards, total_yards, apex_yards, lateral_yards, flight_time_s
		FROM shots ORDER BY struck_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query recent shots: %w", err)
	}
	defer rows.Close()

	var shots []Shot
	for rows.Next() {
		var shot Shot
		var club string
		err := rows.Scan(
			&shot.ID, &shot.StruckAt, &club,
			&shot.Swing.SpeedMPH, &shot.Swing.FaceAngleDeg, &shot.Swing.PathDeg, &shot.Swing.ContactPoint,
			&shot.Launch.BallSpeedMPH, &shot.Launch.VLADeg, &shot.Launch.HLADeg,
			&shot.Launch.BackspinRPM, &shot.Launch.SpinAxisDeg,
			&shot.Flight.CarryYards, &shot.Flight.TotalYards, &shot.Flight.ApexYards,
			&shot.Flight.LateralYards, &shot.Flight.FlightTimeS,
		)
		if err != nil {
			return nil, fmt.Errorf("scan shot row: %w", err)
		}
		shot.Swing.Club = swing.ClubType(club)
		shots = append(shots, shot)
	}
	return shots, rows.Err()
}

// Count returns the total number of recorded shots.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM shots`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count shots: %w", err)
	}
	return n, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
