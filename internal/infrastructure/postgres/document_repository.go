package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/tradeportal-api/internal/domain"
	"github.com/jhoicas/tradeportal-api/internal/domain/entity"
	"github.com/jhoicas/tradeportal-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

const documentColumns = `
	d.id, d.title, d.description, d.file_path, d.file_size, d.file_type, d.category,
	d.uploaded_by, d.is_public, d.tags, d.created_at, d.updated_at, u.full_name`

// DocumentRepo implementación del puerto DocumentRepository sobre PostgreSQL.
type DocumentRepo struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository construye el adaptador de persistencia para documentos.
func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepo {
	return &DocumentRepo{pool: pool}
}

// Create persiste un documento nuevo.
func (r *DocumentRepo) Create(doc *entity.Document) error {
	query := `
		INSERT INTO documents (id, title, description, file_path, file_size, file_type, category,
			uploaded_by, is_public, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.pool.Exec(context.Background(), query,
		doc.ID, doc.Title, nullIfEmpty(doc.Description), doc.FilePath, doc.FileSize,
		doc.FileType, doc.Category, doc.UploadedBy, doc.IsPublic, doc.Tags,
		doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID obtiene un documento por ID, (nil, nil) si no existe.
func (r *DocumentRepo) GetByID(id string) (*entity.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents d LEFT JOIN users u ON u.id = d.uploaded_by
		WHERE d.id = $1`
	row := r.pool.QueryRow(context.Background(), query, id)
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document by id: %w", err)
	}
	return doc, nil
}

// List lista documentos con filtros opcionales, más recientes primero.
func (r *DocumentRepo) List(f repository.DocumentFilters, limit, offset int) ([]*entity.Document, error) {
	var conds []string
	var args []any
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("d.category = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf("(d.title ILIKE $%d OR d.description ILIKE $%d)", len(args), len(args)))
	}

	query := `
		SELECT ` + documentColumns + `
		FROM documents d LEFT JOIN users u ON u.id = d.uploaded_by`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY d.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var list []*entity.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, doc)
	}
	return list, rows.Err()
}

// Delete elimina un documento. ErrNotFound si el id no existe.
func (r *DocumentRepo) Delete(id string) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var doc entity.Document
	var description, uploadedByName *string
	err := row.Scan(
		&doc.ID, &doc.Title, &description, &doc.FilePath, &doc.FileSize, &doc.FileType,
		&doc.Category, &doc.UploadedBy, &doc.IsPublic, &doc.Tags, &doc.CreatedAt, &doc.UpdatedAt,
		&uploadedByName,
	)
	if err != nil {
		return nil, err
	}
	if description != nil {
		doc.Description = *description
	}
	if uploadedByName != nil {
		doc.UploadedByName = *uploadedByName
	}
	return &doc, nil
}
