package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/swiftload/loadboard-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const loadColumns = `id, poster_id, title, pickup_city, pickup_state, pickup_date,
	delivery_city, delivery_state, delivery_date, weight, equipment, rate, notes,
	status, assigned_bidder_id, created_at`

// LoadRepository - интерфейс для работы с грузами.
type LoadRepository interface {
	CreateLoad(ctx context.Context, loadReq models.LoadRequest) (*models.Load, error)
	GetLoad(ctx context.Context, loadId string) (*models.Load, error)
	GetLoads(ctx context.Context, filter models.LoadFilter) ([]models.Load, error)
	TransitionLoad(ctx context.Context, loadId string, actor *models.User, target models.LoadStatus) (*models.Load, models.LoadStatus, error)
	GetBoardStats(ctx context.Context) (*models.BoardStats, error)
	SaveLoad(ctx context.Context, userId, loadId string) error
	GetSavedLoads(ctx context.Context, userId string) ([]models.Load, error)
}

// PostgresLoadRepository - реализация LoadRepository для базы данных.
type PostgresLoadRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresLoadRepository создает новый экземпляр PostgresLoadRepository.
func NewPostgresLoadRepository(db *pgxpool.Pool) *PostgresLoadRepository {
	return &PostgresLoadRepository{DB: db}
}

func scanLoad(row pgx.Row) (*models.Load, error) {
	var load models.Load
	err := row.Scan(
		&load.ID,
		&load.PosterID,
		&load.Title,
		&load.PickupCity,
		&load.PickupState,
		&load.PickupDate,
		&load.DeliveryCity,
		&load.DeliveryState,
		&load.DeliveryDate,
		&load.Weight,
		&load.Equipment,
		&load.Rate,
		&load.Notes,
		&load.Status,
		&load.AssignedBidderID,
		&load.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &load, nil
}

// CreateLoad создает новый груз в статусе open.
func (r *PostgresLoadRepository) CreateLoad(ctx context.Context, loadReq models.LoadRequest) (*models.Load, error) {
	newLoad := models.Load{
		ID:            uuid.New().String(),
		PosterID:      loadReq.PosterID,
		Title:         loadReq.Title,
		PickupCity:    loadReq.PickupCity,
		PickupState:   loadReq.PickupState,
		PickupDate:    loadReq.PickupDate,
		DeliveryCity:  loadReq.DeliveryCity,
		DeliveryState: loadReq.DeliveryState,
		DeliveryDate:  loadReq.DeliveryDate,
		Weight:        loadReq.Weight,
		Equipment:     loadReq.Equipment,
		Rate:          loadReq.Rate,
		Notes:         loadReq.Notes,
		Status:        models.OpenLoad,
		CreatedAt:     time.Now().UTC(),
	}
	insertQuery := `INSERT INTO loads (id, poster_id, title, pickup_city, pickup_state, pickup_date,
	                delivery_city, delivery_state, delivery_date, weight, equipment, rate, notes, status, created_at)
	                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newLoad.ID,
		newLoad.PosterID,
		newLoad.Title,
		newLoad.PickupCity,
		newLoad.PickupState,
		newLoad.PickupDate,
		newLoad.DeliveryCity,
		newLoad.DeliveryState,
		newLoad.DeliveryDate,
		newLoad.Weight,
		newLoad.Equipment,
		newLoad.Rate,
		newLoad.Notes,
		newLoad.Status,
		newLoad.CreatedAt)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return &newLoad, nil
}

// GetLoad возвращает груз по идентификатору.
func (r *PostgresLoadRepository) GetLoad(ctx context.Context, loadId string) (*models.Load, error) {
	query := fmt.Sprintf(`SELECT %s FROM loads WHERE id = $1`, loadColumns)
	load, err := scanLoad(r.DB.QueryRow(ctx, query, loadId))
	if err != nil {
		return nil, mapStoreError(err)
	}
	return load, nil
}

// GetLoads возвращает список грузов по фильтру, новые первыми.
func (r *PostgresLoadRepository) GetLoads(ctx context.Context, filter models.LoadFilter) ([]models.Load, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.PickupCity != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(pickup_city) LIKE $%d", argIndex))
		args = append(args, "%"+strings.ToLower(filter.PickupCity)+"%")
		argIndex++
	}
	if filter.DeliveryCity != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(delivery_city) LIKE $%d", argIndex))
		args = append(args, "%"+strings.ToLower(filter.DeliveryCity)+"%")
		argIndex++
	}
	if filter.Equipment != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(equipment) LIKE $%d", argIndex))
		args = append(args, "%"+strings.ToLower(filter.Equipment)+"%")
		argIndex++
	}
	if filter.MinRate > 0 {
		conditions = append(conditions, fmt.Sprintf("rate >= $%d", argIndex))
		args = append(args, filter.MinRate)
		argIndex++
	}
	if filter.MaxWeight > 0 {
		conditions = append(conditions, fmt.Sprintf("weight <= $%d", argIndex))
		args = append(args, filter.MaxWeight)
		argIndex++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}
	query := fmt.Sprintf(`SELECT %s FROM loads %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		loadColumns, where, argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loads []models.Load
	for rows.Next() {
		load, err := scanLoad(rows)
		if err != nil {
			return nil, err
		}
		loads = append(loads, *load)
	}
	return loads, rows.Err()
}

// TransitionLoad выполняет прямой переход статуса груза и возвращает
// обновлённый груз вместе с исходным статусом, прочитанным под блокировкой
// строки. Отмена в той же транзакции отклоняет все ожидающие ставки и
// снимает назначенного перевозчика, чтобы инвариант назначения держался
// и в терминальном статусе.
func (r *PostgresLoadRepository) TransitionLoad(ctx context.Context, loadId string, actor *models.User, target models.LoadStatus) (*models.Load, models.LoadStatus, error) {
	var updated *models.Load
	var prior models.LoadStatus
	err := execTx(ctx, r.DB, func(tx pgx.Tx) error {
		lockQuery := fmt.Sprintf(`SELECT %s FROM loads WHERE id = $1 FOR UPDATE`, loadColumns)
		current, err := scanLoad(tx.QueryRow(ctx, lockQuery, loadId))
		if err != nil {
			return mapStoreError(err)
		}
		prior = current.Status

		if actor.ID != current.PosterID && !actor.IsAdmin() {
			return models.ErrForbidden
		}
		if !current.Status.CanTransitionTo(target) {
			return models.ErrIllegalTransition
		}

		if target == models.CancelledLoad {
			rejectQuery := `UPDATE bids SET status = $1 WHERE load_id = $2 AND status = $3`
			if _, err = tx.Exec(ctx, rejectQuery, models.RejectedBid, loadId, models.PendingBid); err != nil {
				return mapStoreError(err)
			}
			updateQuery := fmt.Sprintf(`UPDATE loads SET status = $1, assigned_bidder_id = NULL WHERE id = $2 RETURNING %s`, loadColumns)
			updated, err = scanLoad(tx.QueryRow(ctx, updateQuery, target, loadId))
			return mapStoreError(err)
		}

		updateQuery := fmt.Sprintf(`UPDATE loads SET status = $1 WHERE id = $2 RETURNING %s`, loadColumns)
		updated, err = scanLoad(tx.QueryRow(ctx, updateQuery, target, loadId))
		return mapStoreError(err)
	})
	if err != nil {
		return nil, "", err
	}
	return updated, prior, nil
}

// GetBoardStats возвращает сводные показатели доски.
func (r *PostgresLoadRepository) GetBoardStats(ctx context.Context) (*models.BoardStats, error) {
	var stats models.BoardStats
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM loads),
			(SELECT COUNT(*) FROM loads WHERE status = $1),
			(SELECT COUNT(*) FROM bids)`
	err := r.DB.QueryRow(ctx, query, models.OpenLoad).Scan(&stats.Users, &stats.Loads, &stats.OpenLoads, &stats.Bids)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// SaveLoad добавляет груз в закладки пользователя. Повторное сохранение
// не является ошибкой.
func (r *PostgresLoadRepository) SaveLoad(ctx context.Context, userId, loadId string) error {
	insertQuery := `INSERT INTO saved_loads (id, user_id, load_id, created_at)
	                VALUES ($1, $2, $3, $4)
	                ON CONFLICT (user_id, load_id) DO NOTHING`
	_, err := r.DB.Exec(ctx, insertQuery, uuid.New().String(), userId, loadId, time.Now().UTC())
	return mapStoreError(err)
}

// GetSavedLoads возвращает закладки пользователя, новые первыми.
func (r *PostgresLoadRepository) GetSavedLoads(ctx context.Context, userId string) ([]models.Load, error) {
	query := `
		SELECT l.id, l.poster_id, l.title, l.pickup_city, l.pickup_state, l.pickup_date,
		       l.delivery_city, l.delivery_state, l.delivery_date, l.weight, l.equipment,
		       l.rate, l.notes, l.status, l.assigned_bidder_id, l.created_at
		FROM saved_loads s
		JOIN loads l ON l.id = s.load_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC`
	rows, err := r.DB.Query(ctx, query, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loads []models.Load
	for rows.Next() {
		load, err := scanLoad(rows)
		if err != nil {
			return nil, err
		}
		loads = append(loads, *load)
	}
	return loads, rows.Err()
}
