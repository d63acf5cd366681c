package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"psytech/internal/domain/models"
	"psytech/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lib/pq"
)

const (
	postsTable = "posts"

	uniqueViolation = "23505"
)

var postColumns = []string{
	"id", "slug", "title", "summary", "content", "hero_image", "tags", "language",
	"status", "seo", "created_at", "updated_at", "published_at", "scheduled_at", "ai_generated",
}

type PostRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewPostRepository(db *pgxpool.Pool) *PostRepo {
	return &PostRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PostRepo) SavePost(ctx context.Context, post models.Post) error {
	const op = "repository.post_repository.SavePost"

	seo, err := encodeSEO(post.SEO)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}

	query, args, err := r.sb.Insert(postsTable).
		Columns(postColumns...).
		Values(
			post.ID,
			post.Slug,
			post.Title,
			post.Summary,
			post.Content,
			post.HeroImage,
			tags,
			post.Language,
			string(post.Status),
			seo,
			post.CreatedAt,
			post.UpdatedAt,
			post.PublishedAt,
			post.ScheduledAt,
			post.AIGenerated,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrSlugExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *PostRepo) GetPostByID(ctx context.Context, postID uuid.UUID) (*models.Post, error) {
	const op = "repository.post_repository.GetPostByID"

	return r.getOne(ctx, op, sq.Eq{"id": postID})
}

func (r *PostRepo) GetPublishedPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	const op = "repository.post_repository.GetPublishedPostBySlug"

	return r.getOne(ctx, op, sq.Eq{"slug": slug, "status": string(models.PostStatusPublished)})
}

func (r *PostRepo) getOne(ctx context.Context, op string, where sq.Sqlizer) (*models.Post, error) {
	query, args, err := r.sb.Select(postColumns...).
		From(postsTable).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	post, err := scanPost(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return post, nil
}

func (r *PostRepo) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	const op = "repository.post_repository.SlugExists"

	builder := r.sb.Select("1").
		From(postsTable).
		Where(sq.Eq{"slug": slug})
	if excludeID != uuid.Nil {
		builder = builder.Where(sq.NotEq{"id": excludeID})
	}

	query, args, err := builder.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

func (r *PostRepo) UpdatePostFields(ctx context.Context, postID uuid.UUID, updates map[string]interface{}) error {
	const op = "repository.post_repository.UpdatePostFields"

	if len(updates) == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNoFieldsToSave)
	}

	builder := r.sb.Update(postsTable)

	for field, value := range updates {
		if !postUpdatableFields[field] {
			return fmt.Errorf("%s: field '%s' is not allowed for update", op, field)
		}

		switch v := value.(type) {
		case *models.SEO:
			encoded, err := encodeSEO(v)
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			value = encoded
		case models.PostStatus:
			value = string(v)
		}

		builder = builder.Set(field, value)
	}

	query, args, err := builder.Where(sq.Eq{"id": postID}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrSlugExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
	}

	return nil
}

func (r *PostRepo) DeletePost(ctx context.Context, postID uuid.UUID) error {
	const op = "repository.post_repository.DeletePost"

	query, args, err := r.sb.Delete(postsTable).
		Where(sq.Eq{"id": postID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
	}

	return nil
}

func (r *PostRepo) ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, int, error) {
	const op = "repository.post_repository.ListPosts"

	where := sq.And{}
	if filter.Status != "" {
		where = append(where, sq.Eq{"status": string(filter.Status)})
	}
	if filter.Language != "" {
		where = append(where, sq.Eq{"language": filter.Language})
	}
	if filter.Tag != "" {
		where = append(where, sq.Expr("tags @> ?", pq.Array([]string{filter.Tag})))
	}
	if filter.Query != "" {
		pattern := "%" + escapeLike(filter.Query) + "%"
		where = append(where, sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"summary": pattern},
			sq.ILike{"content": pattern},
		})
	}

	countQuery, countArgs, err := r.sb.Select("COUNT(*)").From(postsTable).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	builder := r.sb.Select(postColumns...).From(postsTable).Where(where)
	if filter.Status == models.PostStatusPublished {
		builder = builder.OrderBy("published_at DESC NULLS LAST", "created_at DESC")
	} else {
		builder = builder.OrderBy("created_at DESC")
	}
	if filter.PerPage > 0 {
		builder = builder.
			Limit(uint64(filter.PerPage)).
			Offset(uint64(filter.Offset()))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return posts, total, nil
}

func (r *PostRepo) TagCounts(ctx context.Context) ([]models.TagCount, error) {
	const op = "repository.post_repository.TagCounts"

	query, args, err := r.sb.Select("tag", "COUNT(*) AS cnt").
		FromSelect(
			r.sb.Select("unnest(tags) AS tag").
				From(postsTable).
				Where(sq.Eq{"status": string(models.PostStatusPublished)}),
			"t",
		).
		GroupBy("tag").
		OrderBy("cnt DESC", "tag ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	counts := make([]models.TagCount, 0)
	for rows.Next() {
		var tc models.TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		counts = append(counts, tc)
	}

	return counts, rows.Err()
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var (
		post   models.Post
		status string
		seoRaw []byte
	)

	err := row.Scan(
		&post.ID,
		&post.Slug,
		&post.Title,
		&post.Summary,
		&post.Content,
		&post.HeroImage,
		&post.Tags,
		&post.Language,
		&status,
		&seoRaw,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.PublishedAt,
		&post.ScheduledAt,
		&post.AIGenerated,
	)
	if err != nil {
		return nil, err
	}

	post.Status = models.PostStatus(status)
	if len(seoRaw) > 0 {
		var seo models.SEO
		if err := json.Unmarshal(seoRaw, &seo); err != nil {
			return nil, fmt.Errorf("decode seo: %w", err)
		}
		post.SEO = &seo
	}
	post.Normalize()

	return &post, nil
}

// encodeSEO returns a JSON string for the jsonb column, or nil for NULL.
func encodeSEO(seo *models.SEO) (interface{}, error) {
	if seo == nil {
		return nil, nil
	}

	b, err := json.Marshal(seo)
	if err != nil {
		return nil, err
	}

	return string(b), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
