package repos

import (
	"campusmart/internal/domain"

	"github.com/jmoiron/sqlx"
)

const productCols = `id, title, description, category, brand, condition,
    original_price, selling_price, commission_rate, seller_id,
    is_sold, is_featured, view_count, created_at`

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Create(p *domain.Product) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO products(title,description,category,brand,condition,
	    original_price,selling_price,commission_rate,seller_id)
	  VALUES(?,?,?,?,?,?,?,?,?)`,
		p.Title, p.Description, p.Category, p.Brand, p.Condition,
		p.OriginalPrice, p.SellingPrice, p.CommissionRate, p.SellerID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

// Search returns unsold products from sellers in the given college, excluding
// the requester's own listings, newest first. The free-text match is a
// case-sensitive substring test against title, description or brand, hence
// instr() rather than LIKE (sqlite LIKE folds ASCII case).
func (r *ProductRepo) Search(collegeID, excludeSellerID int64, q, category string) ([]domain.Product, error) {
	where := `u.college_id = ? AND p.is_sold = 0 AND p.seller_id != ?`
	args := []any{collegeID, excludeSellerID}
	if q != "" {
		where += ` AND (instr(p.title, ?) > 0 OR instr(p.description, ?) > 0 OR instr(p.brand, ?) > 0)`
		args = append(args, q, q, q)
	}
	if category != "" {
		where += ` AND p.category = ?`
		args = append(args, category)
	}

	sql := `
	  SELECT p.id, p.title, p.description, p.category, p.brand, p.condition,
	         p.original_price, p.selling_price, p.commission_rate, p.seller_id,
	         p.is_sold, p.is_featured, p.view_count, p.created_at
	  FROM products p
	  JOIN users u ON u.id = p.seller_id
	  WHERE ` + where + `
	  ORDER BY p.created_at DESC, p.id DESC`

	var out []domain.Product
	err := r.db.Select(&out, sql, args...)
	return out, err
}

func (r *ProductRepo) ListBySeller(sellerID int64) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+` FROM products
	  WHERE seller_id = ?
	  ORDER BY created_at DESC, id DESC`, sellerID)
	return out, err
}

func (r *ProductRepo) IncrementViews(id int64) error {
	_, err := r.db.Exec(`UPDATE products SET view_count = view_count + 1 WHERE id = ?`, id)
	return err
}

// ToggleFeatured flips the featured flag and reports the new state.
func (r *ProductRepo) ToggleFeatured(id int64) (bool, error) {
	if _, err := r.db.Exec(`UPDATE products SET is_featured = 1 - is_featured WHERE id = ?`, id); err != nil {
		return false, err
	}
	var featured bool
	err := r.db.Get(&featured, `SELECT is_featured FROM products WHERE id = ?`, id)
	return featured, err
}

func (r *ProductRepo) AddImage(productID int64, path string, primary bool) error {
	_, err := r.db.Exec(`INSERT INTO product_images(product_id,image_path,is_primary) VALUES(?,?,?)`,
		productID, path, primary)
	return err
}

func (r *ProductRepo) Images(productID int64) ([]domain.ProductImage, error) {
	var out []domain.ProductImage
	err := r.db.Select(&out, `
	  SELECT id,product_id,image_path,is_primary FROM product_images
	  WHERE product_id = ?
	  ORDER BY is_primary DESC, id ASC`, productID)
	return out, err
}

func (r *ProductRepo) Count() (int64, error) {
	var n int64
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products`)
	return n, err
}

// SellerCollege resolves the college of a product's seller with an explicit
// join instead of entity traversal.
func (r *ProductRepo) SellerCollege(productID int64) (int64, error) {
	var collegeID int64
	err := r.db.Get(&collegeID, `
	  SELECT u.college_id FROM products p
	  JOIN users u ON u.id = p.seller_id
	  WHERE p.id = ?`, productID)
	return collegeID, err
}
