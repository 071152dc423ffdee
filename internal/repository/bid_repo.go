package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/swiftload/loadboard-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bidColumns = `id, load_id, bidder_id, amount, note, status, created_at`

// BidRepository - интерфейс для работы со ставками.
type BidRepository interface {
	CreateBid(ctx context.Context, bidReq models.BidRequest) (*models.Bid, error)
	GetBid(ctx context.Context, bidId string) (*models.Bid, error)
	GetLoadBids(ctx context.Context, loadId string) ([]models.Bid, error)
	GetUserBids(ctx context.Context, bidderId string, limit, offset int) ([]models.Bid, error)
	AcceptBid(ctx context.Context, bidId string, actor *models.User) (*models.Load, error)
	RejectBid(ctx context.Context, bidId string, actor *models.User) (*models.Bid, error)
}

// PostgresBidRepository - реализация BidRepository для базы данных.
type PostgresBidRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresBidRepository создает новый экземпляр PostgresBidRepository.
func NewPostgresBidRepository(db *pgxpool.Pool) *PostgresBidRepository {
	return &PostgresBidRepository{DB: db}
}

func scanBid(row pgx.Row) (*models.Bid, error) {
	var bid models.Bid
	err := row.Scan(
		&bid.ID,
		&bid.LoadID,
		&bid.BidderID,
		&bid.Amount,
		&bid.Note,
		&bid.Status,
		&bid.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

// CreateBid создает новую ставку в статусе pending. Проверка статуса груза
// и вставка выполняются в одной транзакции: строка груза блокируется
// разделяемо, чтобы параллельное принятие ставки не проскочило между
// проверкой и вставкой. Гонку двух одновременных подач одного перевозчика
// закрывает частичный уникальный индекс по ожидающим ставкам.
func (r *PostgresBidRepository) CreateBid(ctx context.Context, bidReq models.BidRequest) (*models.Bid, error) {
	newBid := models.Bid{
		ID:        uuid.New().String(),
		LoadID:    bidReq.LoadID,
		BidderID:  bidReq.BidderID,
		Amount:    bidReq.Amount,
		Note:      bidReq.Note,
		Status:    models.PendingBid,
		CreatedAt: time.Now().UTC(),
	}
	err := execTx(ctx, r.DB, func(tx pgx.Tx) error {
		var status models.LoadStatus
		lockQuery := `SELECT status FROM loads WHERE id = $1 FOR SHARE`
		if err := tx.QueryRow(ctx, lockQuery, newBid.LoadID).Scan(&status); err != nil {
			return mapStoreError(err)
		}
		if status != models.OpenLoad {
			return models.ErrLoadNotOpen
		}

		insertQuery := `INSERT INTO bids (id, load_id, bidder_id, amount, note, status, created_at)
		                VALUES ($1, $2, $3, $4, $5, $6, $7)`
		_, err := tx.Exec(
			ctx,
			insertQuery,
			newBid.ID,
			newBid.LoadID,
			newBid.BidderID,
			newBid.Amount,
			newBid.Note,
			newBid.Status,
			newBid.CreatedAt)
		return mapStoreError(err)
	})
	if err != nil {
		return nil, err
	}
	return &newBid, nil
}

// GetBid возвращает ставку по идентификатору.
func (r *PostgresBidRepository) GetBid(ctx context.Context, bidId string) (*models.Bid, error) {
	query := fmt.Sprintf(`SELECT %s FROM bids WHERE id = $1`, bidColumns)
	bid, err := scanBid(r.DB.QueryRow(ctx, query, bidId))
	if err != nil {
		return nil, mapStoreError(err)
	}
	return bid, nil
}

// GetLoadBids возвращает список ставок по грузу, новые первыми.
func (r *PostgresBidRepository) GetLoadBids(ctx context.Context, loadId string) ([]models.Bid, error) {
	query := fmt.Sprintf(`SELECT %s FROM bids WHERE load_id = $1 ORDER BY created_at DESC`, bidColumns)
	rows, err := r.DB.Query(ctx, query, loadId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []models.Bid
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return nil, err
		}
		bids = append(bids, *bid)
	}
	return bids, rows.Err()
}

// GetUserBids возвращает список ставок перевозчика, новые первыми.
func (r *PostgresBidRepository) GetUserBids(ctx context.Context, bidderId string, limit, offset int) ([]models.Bid, error) {
	query := fmt.Sprintf(`SELECT %s FROM bids WHERE bidder_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, bidColumns)
	rows, err := r.DB.Query(ctx, query, bidderId, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []models.Bid
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return nil, err
		}
		bids = append(bids, *bid)
	}
	return bids, rows.Err()
}

// AcceptBid принимает ставку: выбранная ставка становится accepted, все
// остальные ставки груза - rejected, груз переходит в assigned с назначенным
// перевозчиком. Всё выполняется в одной транзакции под блокировкой строки
// груза: из двух одновременных принятий по одному грузу выигрывает ровно
// одно, проигравшее видит уже не открытый груз и получает ErrLoadNotOpen.
func (r *PostgresBidRepository) AcceptBid(ctx context.Context, bidId string, actor *models.User) (*models.Load, error) {
	var assigned *models.Load
	err := execTx(ctx, r.DB, func(tx pgx.Tx) error {
		var loadId, bidderId string
		bidQuery := `SELECT load_id, bidder_id FROM bids WHERE id = $1`
		if err := tx.QueryRow(ctx, bidQuery, bidId).Scan(&loadId, &bidderId); err != nil {
			return mapStoreError(err)
		}

		var posterId string
		var status models.LoadStatus
		lockQuery := `SELECT poster_id, status FROM loads WHERE id = $1 FOR UPDATE`
		if err := tx.QueryRow(ctx, lockQuery, loadId).Scan(&posterId, &status); err != nil {
			return mapStoreError(err)
		}

		if actor.ID != posterId && !actor.IsAdmin() {
			return models.ErrForbidden
		}
		if status != models.OpenLoad {
			return models.ErrLoadNotOpen
		}

		acceptQuery := `UPDATE bids SET status = $1 WHERE id = $2`
		if _, err := tx.Exec(ctx, acceptQuery, models.AcceptedBid, bidId); err != nil {
			return mapStoreError(err)
		}

		rejectQuery := `UPDATE bids SET status = $1 WHERE load_id = $2 AND id <> $3`
		if _, err := tx.Exec(ctx, rejectQuery, models.RejectedBid, loadId, bidId); err != nil {
			return mapStoreError(err)
		}

		assignQuery := fmt.Sprintf(`UPDATE loads SET status = $1, assigned_bidder_id = $2 WHERE id = $3 RETURNING %s`, loadColumns)
		load, err := scanLoad(tx.QueryRow(ctx, assignQuery, models.AssignedLoad, bidderId, loadId))
		if err != nil {
			return mapStoreError(err)
		}
		assigned = load
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assigned, nil
}

// RejectBid отклоняет одну ставку, не затрагивая груз и остальные ставки.
func (r *PostgresBidRepository) RejectBid(ctx context.Context, bidId string, actor *models.User) (*models.Bid, error) {
	var posterId string
	authQuery := `
		SELECT l.poster_id
		FROM bids b
		JOIN loads l ON l.id = b.load_id
		WHERE b.id = $1`
	if err := r.DB.QueryRow(ctx, authQuery, bidId).Scan(&posterId); err != nil {
		return nil, mapStoreError(err)
	}
	if actor.ID != posterId && !actor.IsAdmin() {
		return nil, models.ErrForbidden
	}

	updateQuery := fmt.Sprintf(`UPDATE bids SET status = $1 WHERE id = $2 RETURNING %s`, bidColumns)
	bid, err := scanBid(r.DB.QueryRow(ctx, updateQuery, models.RejectedBid, bidId))
	if err != nil {
		return nil, mapStoreError(err)
	}
	return bid, nil
}
