package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/transitcore/raptor/internal/models"
)

// MetadataRepo serves the read-only stop/route listing endpoints,
// grounded on the teacher's LineRepository: the query engine itself
// never touches the database, only the initial Loader and this
// metadata-browsing path do.
type MetadataRepo struct {
	db *pgxpool.Pool
}

func NewMetadataRepo(db *pgxpool.Pool) *MetadataRepo {
	return &MetadataRepo{db: db}
}

func (r *MetadataRepo) ListRoutes(ctx context.Context) ([]models.Route, error) {
	rows, err := r.db.Query(ctx, `SELECT gid, name FROM routes ORDER BY gid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Route
	for rows.Next() {
		var rt models.Route
		if err := rows.Scan(&rt.GID, &rt.Name); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r *MetadataRepo) RouteStops(ctx context.Context, routeGID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.gid FROM route_stops rs
		JOIN stops s ON s.id = rs.stop_id
		WHERE rs.route_gid = $1
		ORDER BY rs.sequence ASC
	`, routeGID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gids []string
	for rows.Next() {
		var gid string
		if err := rows.Scan(&gid); err != nil {
			return nil, err
		}
		gids = append(gids, gid)
	}
	return gids, rows.Err()
}

func (r *MetadataRepo) ListStops(ctx context.Context) ([]models.Stop, error) {
	rows, err := r.db.Query(ctx, `SELECT gid, name, lat, lon FROM stops ORDER BY gid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Stop
	for rows.Next() {
		var s models.Stop
		if err := rows.Scan(&s.GID, &s.Name, &s.Lat, &s.Lon); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *MetadataRepo) StopDetails(ctx context.Context, gid string) (*models.Stop, error) {
	var s models.Stop
	err := r.db.QueryRow(ctx, `SELECT gid, name, lat, lon FROM stops WHERE gid = $1`, gid).
		Scan(&s.GID, &s.Name, &s.Lat, &s.Lon)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
