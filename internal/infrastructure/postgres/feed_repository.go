package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
	"github.com/hszk-dev/vidshare/internal/infrastructure/metrics"
)

const (
	feedVideoColumns = `v.id, v.owner_id, v.video_url, v.video_storage_id, v.thumbnail_url, v.thumbnail_storage_id,
		v.title, v.description, v.duration, v.views, v.is_published, v.created_at, v.updated_at`
	feedOwnerColumns = `u.id, u.username, u.full_name, u.avatar_url`
)

// videoSortColumns whitelists sortable columns so no caller input reaches the SQL text.
var videoSortColumns = map[model.SortField]string{
	model.SortByCreatedAt: "v.created_at",
	model.SortByUpdatedAt: "v.updated_at",
	model.SortByViews:     "v.views",
	model.SortByDuration:  "v.duration",
	model.SortByTitle:     "v.title",
}

// FeedRepository implements repository.FeedRepository using PostgreSQL.
// Owner joins are INNER joins: a row whose owner is missing is dropped.
// Totals come from a COUNT over the same FROM and WHERE as the page query.
type FeedRepository struct {
	db DBTX
}

// NewFeedRepository creates a new FeedRepository instance.
func NewFeedRepository(db DBTX) *FeedRepository {
	return &FeedRepository{db: db}
}

// feedQuery accumulates WHERE predicates and their positional arguments.
type feedQuery struct {
	from  string
	where []string
	args  []any
}

func newFeedQuery(from string) *feedQuery {
	return &feedQuery{from: from}
}

// arg registers v and returns its placeholder.
func (q *feedQuery) arg(v any) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

func (q *feedQuery) and(predicate string) *feedQuery {
	q.where = append(q.where, predicate)
	return q
}

func (q *feedQuery) body() string {
	if len(q.where) == 0 {
		return q.from
	}
	return q.from + " WHERE " + strings.Join(q.where, " AND ")
}

func (q *feedQuery) countSQL() string {
	return "SELECT COUNT(*) FROM " + q.body()
}

// pageSQL must be called after countSQL: it appends LIMIT and OFFSET arguments.
func (q *feedQuery) pageSQL(columns, orderBy string, page model.PageRequest) string {
	limit := q.arg(page.Limit())
	offset := q.arg(page.Offset())
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s LIMIT %s OFFSET %s",
		columns, q.body(), orderBy, limit, offset)
}

// count runs the COUNT query with the predicates registered so far.
func (r *FeedRepository) count(ctx context.Context, q *feedQuery, table string) (int64, error) {
	recordQuery(metrics.DBQuerySelect, table)
	var total int64
	if err := r.db.QueryRow(ctx, q.countSQL(), q.args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return total, nil
}

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ListVideos returns a page of videos with their owners.
func (r *FeedRepository) ListVideos(ctx context.Context, filter model.VideoFilter, sort model.VideoSort, page model.PageRequest) ([]model.VideoCard, int64, error) {
	q := newFeedQuery("videos v JOIN users u ON u.id = v.owner_id")
	if filter.OwnerID != uuid.Nil {
		q.and("v.owner_id = " + q.arg(filter.OwnerID))
	}
	if filter.PublishedOnly {
		q.and("v.is_published")
	}
	if term := strings.TrimSpace(filter.Query); term != "" {
		p := q.arg("%" + escapeLike(term) + "%")
		q.and(fmt.Sprintf("(v.title ILIKE %s OR v.description ILIKE %s)", p, p))
	}

	total, err := r.count(ctx, q, metrics.TableVideos)
	if err != nil {
		return nil, 0, err
	}

	column, ok := videoSortColumns[sort.Field]
	if !ok {
		sort = model.DefaultVideoSort()
		column = videoSortColumns[sort.Field]
	}
	direction := "ASC"
	if sort.Descending {
		direction = "DESC"
	}
	orderBy := fmt.Sprintf("%s %s, v.id %s", column, direction, direction)

	return r.queryVideoCards(ctx, q.pageSQL(feedVideoColumns+", "+feedOwnerColumns, orderBy, page), q.args, total)
}

// ListLikedVideos returns the videos actorID liked, most recent like first.
func (r *FeedRepository) ListLikedVideos(ctx context.Context, actorID uuid.UUID, page model.PageRequest) ([]model.VideoCard, int64, error) {
	q := newFeedQuery(`relations r
		JOIN videos v ON v.id = r.target_id
		JOIN users u ON u.id = v.owner_id`)
	q.and("r.actor_id = " + q.arg(actorID))
	q.and("r.target_type = " + q.arg(model.TargetVideo.String()))

	total, err := r.count(ctx, q, metrics.TableRelations)
	if err != nil {
		return nil, 0, err
	}

	return r.queryVideoCards(ctx, q.pageSQL(feedVideoColumns+", "+feedOwnerColumns, "r.created_at DESC, v.id DESC", page), q.args, total)
}

// ListWatchHistory returns the videos userID watched, most recent first.
func (r *FeedRepository) ListWatchHistory(ctx context.Context, userID uuid.UUID, page model.PageRequest) ([]model.VideoCard, int64, error) {
	q := newFeedQuery(`watch_history w
		JOIN videos v ON v.id = w.video_id
		JOIN users u ON u.id = v.owner_id`)
	q.and("w.user_id = " + q.arg(userID))

	total, err := r.count(ctx, q, metrics.TableWatchHistory)
	if err != nil {
		return nil, 0, err
	}

	return r.queryVideoCards(ctx, q.pageSQL(feedVideoColumns+", "+feedOwnerColumns, "w.watched_at DESC, v.id DESC", page), q.args, total)
}

func (r *FeedRepository) queryVideoCards(ctx context.Context, sql string, args []any, total int64) ([]model.VideoCard, int64, error) {
	recordQuery(metrics.DBQuerySelect, metrics.TableVideos)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	cards := []model.VideoCard{}
	for rows.Next() {
		var card model.VideoCard
		targets := append(videoScanTargets(&card.Video), ownerScanTargets(&card.Owner)...)
		if err := rows.Scan(targets...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan video: %w", err)
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating videos: %w", err)
	}

	return cards, total, nil
}

// ListComments returns a page of a video's comments, newest first.
func (r *FeedRepository) ListComments(ctx context.Context, videoID uuid.UUID, page model.PageRequest) ([]model.CommentView, int64, error) {
	q := newFeedQuery("comments c JOIN users u ON u.id = c.owner_id")
	q.and("c.video_id = " + q.arg(videoID))

	total, err := r.count(ctx, q, metrics.TableComments)
	if err != nil {
		return nil, 0, err
	}

	columns := "c.id, c.owner_id, c.video_id, c.content, c.created_at, c.updated_at, " + feedOwnerColumns
	recordQuery(metrics.DBQuerySelect, metrics.TableComments)
	rows, err := r.db.Query(ctx, q.pageSQL(columns, "c.created_at DESC, c.id DESC", page), q.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	views := []model.CommentView{}
	for rows.Next() {
		var v model.CommentView
		targets := append([]any{&v.ID, &v.OwnerID, &v.VideoID, &v.Content, &v.CreatedAt, &v.UpdatedAt}, ownerScanTargets(&v.Owner)...)
		if err := rows.Scan(targets...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan comment: %w", err)
		}
		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating comments: %w", err)
	}

	return views, total, nil
}

// ListTweets returns a page of a user's tweets, newest first.
func (r *FeedRepository) ListTweets(ctx context.Context, ownerID uuid.UUID, page model.PageRequest) ([]model.TweetView, int64, error) {
	q := newFeedQuery("tweets t JOIN users u ON u.id = t.owner_id")
	q.and("t.owner_id = " + q.arg(ownerID))

	total, err := r.count(ctx, q, metrics.TableTweets)
	if err != nil {
		return nil, 0, err
	}

	columns := "t.id, t.owner_id, t.content, t.created_at, t.updated_at, " + feedOwnerColumns
	recordQuery(metrics.DBQuerySelect, metrics.TableTweets)
	rows, err := r.db.Query(ctx, q.pageSQL(columns, "t.created_at DESC, t.id DESC", page), q.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query tweets: %w", err)
	}
	defer rows.Close()

	views := []model.TweetView{}
	for rows.Next() {
		var v model.TweetView
		targets := append([]any{&v.ID, &v.OwnerID, &v.Content, &v.CreatedAt, &v.UpdatedAt}, ownerScanTargets(&v.Owner)...)
		if err := rows.Scan(targets...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan tweet: %w", err)
		}
		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating tweets: %w", err)
	}

	return views, total, nil
}

// ListPlaylists returns a page of a user's playlists with member counts and
// the first member's thumbnail as cover.
func (r *FeedRepository) ListPlaylists(ctx context.Context, ownerID uuid.UUID, page model.PageRequest) ([]model.PlaylistSummary, int64, error) {
	q := newFeedQuery("playlists p")
	q.and("p.owner_id = " + q.arg(ownerID))

	total, err := r.count(ctx, q, metrics.TablePlaylists)
	if err != nil {
		return nil, 0, err
	}

	const columns = `p.id, p.name, p.description, p.created_at, p.updated_at,
		(SELECT COUNT(*) FROM playlist_videos pv WHERE pv.playlist_id = p.id),
		cover.thumbnail_url, cover.thumbnail_storage_id`
	q.from = `playlists p
		LEFT JOIN LATERAL (
			SELECT v.thumbnail_url, v.thumbnail_storage_id
			FROM playlist_videos pv
			JOIN videos v ON v.id = pv.video_id
			WHERE pv.playlist_id = p.id
			ORDER BY pv.position
			LIMIT 1
		) cover ON TRUE`

	recordQuery(metrics.DBQuerySelect, metrics.TablePlaylists)
	rows, err := r.db.Query(ctx, q.pageSQL(columns, "p.created_at DESC, p.id DESC", page), q.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	summaries := []model.PlaylistSummary{}
	for rows.Next() {
		var (
			s                 model.PlaylistSummary
			coverURL, coverID *string
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt, &s.TotalVideos, &coverURL, &coverID); err != nil {
			return nil, 0, fmt.Errorf("failed to scan playlist: %w", err)
		}
		if coverURL != nil && coverID != nil {
			s.Thumbnail = &model.MediaAsset{URL: *coverURL, StorageID: *coverID}
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating playlists: %w", err)
	}

	return summaries, total, nil
}

// ListSubscribers returns the profiles subscribed to channelID.
func (r *FeedRepository) ListSubscribers(ctx context.Context, channelID uuid.UUID, page model.PageRequest) ([]model.OwnerProfile, int64, error) {
	q := newFeedQuery("relations r JOIN users u ON u.id = r.actor_id")
	q.and("r.target_id = " + q.arg(channelID))
	q.and("r.target_type = " + q.arg(model.TargetChannel.String()))
	return r.listProfiles(ctx, q, page)
}

// ListSubscriptions returns the channels subscriberID subscribed to.
func (r *FeedRepository) ListSubscriptions(ctx context.Context, subscriberID uuid.UUID, page model.PageRequest) ([]model.OwnerProfile, int64, error) {
	q := newFeedQuery("relations r JOIN users u ON u.id = r.target_id")
	q.and("r.actor_id = " + q.arg(subscriberID))
	q.and("r.target_type = " + q.arg(model.TargetChannel.String()))
	return r.listProfiles(ctx, q, page)
}

func (r *FeedRepository) listProfiles(ctx context.Context, q *feedQuery, page model.PageRequest) ([]model.OwnerProfile, int64, error) {
	total, err := r.count(ctx, q, metrics.TableRelations)
	if err != nil {
		return nil, 0, err
	}

	recordQuery(metrics.DBQuerySelect, metrics.TableRelations)
	rows, err := r.db.Query(ctx, q.pageSQL(feedOwnerColumns, "r.created_at DESC, u.id DESC", page), q.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	profiles := []model.OwnerProfile{}
	for rows.Next() {
		var p model.OwnerProfile
		if err := rows.Scan(ownerScanTargets(&p)...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating profiles: %w", err)
	}

	return profiles, total, nil
}

// GetPlaylistDetail loads a playlist, its owner, and every member video with its owner.
func (r *FeedRepository) GetPlaylistDetail(ctx context.Context, id uuid.UUID) (*model.PlaylistDetail, error) {
	const playlistQuery = `
		SELECT p.id, p.name, p.description, p.created_at, p.updated_at, ` + feedOwnerColumns + `
		FROM playlists p
		JOIN users u ON u.id = p.owner_id
		WHERE p.id = $1
	`
	const videosQuery = `
		SELECT ` + feedVideoColumns + `, ` + feedOwnerColumns + `
		FROM playlist_videos pv
		JOIN videos v ON v.id = pv.video_id
		JOIN users u ON u.id = v.owner_id
		WHERE pv.playlist_id = $1
		ORDER BY pv.position
	`

	recordQuery(metrics.DBQuerySelect, metrics.TablePlaylists)
	var d model.PlaylistDetail
	targets := append([]any{&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt}, ownerScanTargets(&d.Owner)...)
	if err := r.db.QueryRow(ctx, playlistQuery, id).Scan(targets...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("failed to get playlist detail: %w", err)
	}

	videos, _, err := r.queryVideoCards(ctx, videosQuery, []any{id}, 0)
	if err != nil {
		return nil, err
	}

	d.Videos = videos
	d.TotalVideos = int64(len(videos))
	for _, v := range videos {
		d.TotalViews += v.Views
	}

	return &d, nil
}

func ownerScanTargets(p *model.OwnerProfile) []any {
	return []any{&p.ID, &p.Username, &p.FullName, &p.Avatar}
}

// Compile-time verification that FeedRepository implements repository.FeedRepository.
var _ repository.FeedRepository = (*FeedRepository)(nil)
