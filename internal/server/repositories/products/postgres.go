package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/phonomarket/phono/internal/common"
	"github.com/phonomarket/phono/internal/dbx"
	"github.com/phonomarket/phono/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const productColumns = `id, user_id, title, description, year, brand_id, model_id, custom_model,
	color_id, price, floor_price, currency_id, is_new, has_document, address_id, phone_id,
	storage, ram, views, is_archived, is_sold, is_checked, top_expire_date, created_at`

func scanProduct(scan func(...any) error) (*models.Product, error) {
	p := &models.Product{}
	err := scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.Year, &p.BrandID, &p.ModelID,
		&p.CustomModel, &p.ColorID, &p.Price, &p.FloorPrice, &p.CurrencyID, &p.IsNew,
		&p.HasDocument, &p.AddressID, &p.PhoneID, &p.Storage, &p.RAM, &p.Views,
		&p.IsArchived, &p.IsSold, &p.IsChecked, &p.TopExpireDate, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) queryProducts(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	query :=
		`INSERT INTO products (user_id, title, description, year, brand_id, model_id, custom_model,
			color_id, price, floor_price, currency_id, is_new, has_document, address_id, phone_id,
			storage, ram)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		p.UserID, p.Title, p.Description, p.Year, p.BrandID, p.ModelID, p.CustomModel,
		p.ColorID, p.Price, p.FloorPrice, p.CurrencyID, p.IsNew, p.HasDocument,
		p.AddressID, p.PhoneID, p.Storage, p.RAM).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

// Update overwrites the listing fields the owner may edit. The WHERE clause
// is ownership-scoped.
func (r *PostgresRepository) Update(ctx context.Context, p *models.Product) (*models.Product, error) {
	query :=
		`UPDATE products
		 SET title = $3, description = $4, year = $5, brand_id = $6, model_id = $7,
		     custom_model = $8, color_id = $9, price = $10, floor_price = $11,
		     currency_id = $12, is_new = $13, has_document = $14, address_id = $15,
		     phone_id = $16, storage = $17, ram = $18
		 WHERE id = $1 AND user_id = $2
		 RETURNING ` + productColumns

	row := r.db.QueryRowContext(ctx, query,
		p.ID, p.UserID, p.Title, p.Description, p.Year, p.BrandID, p.ModelID, p.CustomModel,
		p.ColorID, p.Price, p.FloorPrice, p.CurrencyID, p.IsNew, p.HasDocument,
		p.AddressID, p.PhoneID, p.Storage, p.RAM)

	updated, err := scanProduct(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) ByUser(ctx context.Context, userID int64) ([]models.Product, error) {
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *PostgresRepository) Latest(ctx context.Context, limit int) ([]models.Product, error) {
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE NOT is_archived
		 ORDER BY created_at DESC
		 LIMIT $1`, limit)
}

func (r *PostgresRepository) ByBrand(ctx context.Context, brandID int64) ([]models.Product, error) {
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE NOT is_archived AND brand_id = $1
		 ORDER BY created_at DESC`, brandID)
}

func (r *PostgresRepository) ByModel(ctx context.Context, modelID int64) ([]models.Product, error) {
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE NOT is_archived AND model_id = $1
		 ORDER BY created_at DESC`, modelID)
}

// Search builds the WHERE clause facet by facet. Promoted listings sort
// first, then the newest.
func (r *PostgresRepository) Search(ctx context.Context, f SearchFilter) ([]models.Product, error) {
	var (
		conds = []string{"NOT is_archived"}
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if f.Search != "" {
		n := arg("%" + f.Search + "%")
		conds = append(conds, "(title ILIKE "+n+" OR description ILIKE "+n+")")
	}
	if f.BrandID != 0 {
		conds = append(conds, "brand_id = "+arg(f.BrandID))
	}
	if f.ModelID != 0 {
		conds = append(conds, "model_id = "+arg(f.ModelID))
	}
	if f.ColorID != 0 {
		conds = append(conds, "color_id = "+arg(f.ColorID))
	}
	if f.PriceFrom != 0 {
		conds = append(conds, "price >= "+arg(f.PriceFrom))
	}
	if f.PriceTo != 0 {
		conds = append(conds, "price <= "+arg(f.PriceTo))
	}
	if f.MemoryFrom != 0 {
		conds = append(conds, "storage >= "+arg(f.MemoryFrom))
	}
	if f.MemoryTo != 0 {
		conds = append(conds, "storage <= "+arg(f.MemoryTo))
	}
	if f.RegionID != 0 {
		conds = append(conds, "EXISTS (SELECT 1 FROM user_addresses a WHERE a.id = products.address_id AND a.region_id = "+arg(f.RegionID)+")")
	}
	if f.Top {
		conds = append(conds, "top_expire_date > now()")
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY top_expire_date > now() DESC NULLS LAST, created_at DESC`

	return r.queryProducts(ctx, query, args...)
}

func (r *PostgresRepository) SetArchived(ctx context.Context, userID, id int64, sold bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET is_archived = true, is_sold = $3 WHERE id = $1 AND user_id = $2`,
		id, userID, sold)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireRowsAffected(res)
}

func (r *PostgresRepository) SetUnarchived(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET is_archived = false, is_sold = false WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireRowsAffected(res)
}

// SetTop promotes the listing for a week.
func (r *PostgresRepository) SetTop(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET top_expire_date = now() + interval '7 days' WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireRowsAffected(res)
}

func (r *PostgresRepository) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE products SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ImagesByProducts(ctx context.Context, productIDs []int64) ([]models.ProductImage, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(productIDs))
	args := make([]any, len(productIDs))
	for i, id := range productIDs {
		placeholders[i] = "$" + strconv.Itoa(i+1)
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, product_id, url, is_main FROM product_images
		 WHERE product_id IN (`+strings.Join(placeholders, ", ")+`)
		 ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var images []models.ProductImage
	for rows.Next() {
		var img models.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.IsMain); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *PostgresRepository) AddImage(ctx context.Context, img *models.ProductImage) (*models.ProductImage, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO product_images (product_id, url, is_main) VALUES ($1, $2, $3) RETURNING id`,
		img.ProductID, img.URL, img.IsMain).Scan(&img.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return img, nil
}

func (r *PostgresRepository) GetImage(ctx context.Context, id int64) (*models.ProductImage, error) {
	img := &models.ProductImage{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, product_id, url, is_main FROM product_images WHERE id = $1`, id).
		Scan(&img.ID, &img.ProductID, &img.URL, &img.IsMain)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return img, nil
}

func (r *PostgresRepository) DeleteImage(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM product_images
		 WHERE id = $1 AND product_id IN (SELECT id FROM products WHERE user_id = $2)`,
		id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireRowsAffected(res)
}

func (r *PostgresRepository) ClearMainImage(ctx context.Context, productID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE product_images SET is_main = false WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetMainImage(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE product_images SET is_main = true
		 WHERE id = $1 AND product_id IN (SELECT id FROM products WHERE user_id = $2)`,
		id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireRowsAffected(res)
}
