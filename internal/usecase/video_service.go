package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
	"github.com/hszk-dev/vidshare/internal/probe"
	"github.com/hszk-dev/vidshare/internal/saga"
)

// FileInput describes an upload already spooled to local disk.
type FileInput struct {
	Path        string
	FileName    string
	ContentType string
	Size        int64
}

// PublishVideoInput contains the input parameters for publishing a video.
type PublishVideoInput struct {
	OwnerID     uuid.UUID
	Title       string
	Description string
	VideoFile   FileInput
	Thumbnail   FileInput
}

// UpdateVideoInput is a partial update. Nil fields are left unchanged.
type UpdateVideoInput struct {
	Title       *string
	Description *string
	Thumbnail   *FileInput
}

// VideoService coordinates blob uploads, metadata writes and compensating
// deletes for the video lifecycle.
type VideoService interface {
	// Publish uploads both files and creates the video row. If the row cannot
	// be created, every uploaded blob is deleted again.
	Publish(ctx context.Context, input PublishVideoInput) (*model.Video, error)

	// UpdateDetails changes title, description and thumbnail in one owner-conditioned
	// write. A replaced thumbnail blob is deleted only after the write succeeded.
	UpdateDetails(ctx context.Context, principal, videoID uuid.UUID, input UpdateVideoInput) (*model.Video, error)

	// UpdateThumbnail is UpdateDetails with only a new thumbnail.
	UpdateThumbnail(ctx context.Context, principal, videoID uuid.UUID, thumbnail FileInput) (*model.Video, error)

	// TogglePublish flips the published flag of an owned video.
	TogglePublish(ctx context.Context, principal, videoID uuid.UUID) (*model.Video, error)

	// Delete removes the video row, then schedules blob cleanup off the caller's path.
	Delete(ctx context.Context, principal, videoID uuid.UUID) error

	// GetVideo returns a video and records the view. viewer is uuid.Nil for
	// anonymous reads. View bookkeeping never fails the read.
	GetVideo(ctx context.Context, videoID, viewer uuid.UUID) (*model.Video, error)
}

// VideoServiceConfig holds upload limits for VideoService.
type VideoServiceConfig struct {
	MaxVideoBytes     int64
	MaxThumbnailBytes int64
}

// DefaultVideoServiceConfig returns the default configuration.
func DefaultVideoServiceConfig() VideoServiceConfig {
	return VideoServiceConfig{
		MaxVideoBytes:     500 << 20,
		MaxThumbnailBytes: 5 << 20,
	}
}

var thumbnailTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type videoService struct {
	videos  repository.VideoRepository
	users   repository.UserRepository
	storage repository.BlobStorage
	cleanup repository.CleanupQueue
	prober  probe.Prober
	tasks   saga.Submitter
	logger  *slog.Logger

	cfg VideoServiceConfig
}

// NewVideoService creates a new VideoService instance.
// tasks runs watch-history writes and cleanup dispatch in the background.
func NewVideoService(
	videos repository.VideoRepository,
	users repository.UserRepository,
	storage repository.BlobStorage,
	cleanup repository.CleanupQueue,
	prober probe.Prober,
	tasks saga.Submitter,
	logger *slog.Logger,
	cfg VideoServiceConfig,
) VideoService {
	if logger == nil {
		logger = slog.Default()
	}
	return &videoService{
		videos:  videos,
		users:   users,
		storage: storage,
		cleanup: cleanup,
		prober:  prober,
		tasks:   tasks,
		logger:  logger,
		cfg:     cfg,
	}
}

// Publish validates every input before touching either store.
func (s *videoService) Publish(ctx context.Context, in PublishVideoInput) (*model.Video, error) {
	if in.OwnerID == uuid.Nil {
		return nil, model.ErrInvalidOwnerID
	}
	title, err := model.NormalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if err := s.validateVideoFile(in.VideoFile); err != nil {
		return nil, err
	}
	if err := s.validateThumbnail(in.Thumbnail); err != nil {
		return nil, err
	}

	duration, err := s.probeDuration(ctx, in.VideoFile.Path)
	if err != nil {
		return nil, err
	}

	var (
		videoFile model.MediaAsset
		thumbnail model.MediaAsset
		video     *model.Video
	)

	err = saga.New("publish_video", s.logger).
		Step("upload_video",
			func(ctx context.Context) error {
				asset, err := s.upload(ctx, videoKey(in.VideoFile.FileName), in.VideoFile)
				videoFile = asset
				return err
			},
			func(ctx context.Context) error {
				return s.storage.Delete(ctx, videoFile.StorageID)
			},
		).
		Step("upload_thumbnail",
			func(ctx context.Context) error {
				asset, err := s.upload(ctx, thumbnailKey(in.Thumbnail.FileName), in.Thumbnail)
				thumbnail = asset
				return err
			},
			func(ctx context.Context) error {
				return s.storage.Delete(ctx, thumbnail.StorageID)
			},
		).
		Step("create_metadata",
			func(ctx context.Context) error {
				v, err := model.NewVideo(in.OwnerID, title, in.Description, videoFile, thumbnail, duration)
				if err != nil {
					return err
				}
				if err := s.videos.Create(ctx, v); err != nil {
					return upstream("create video", err)
				}
				video = v
				return nil
			},
			nil,
		).
		Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("publish video: %w", err)
	}

	return video, nil
}

func (s *videoService) UpdateThumbnail(ctx context.Context, principal, videoID uuid.UUID, thumbnail FileInput) (*model.Video, error) {
	return s.UpdateDetails(ctx, principal, videoID, UpdateVideoInput{Thumbnail: &thumbnail})
}

func (s *videoService) UpdateDetails(ctx context.Context, principal, videoID uuid.UUID, in UpdateVideoInput) (*model.Video, error) {
	patch := model.VideoPatch{Title: in.Title, Description: in.Description}
	if in.Thumbnail == nil || !patch.IsEmpty() {
		normalized, err := patch.Normalize()
		if err != nil {
			return nil, err
		}
		patch = normalized
	}
	if in.Thumbnail != nil {
		if err := s.validateThumbnail(*in.Thumbnail); err != nil {
			return nil, err
		}
	}

	if _, err := s.ownedVideo(ctx, principal, videoID); err != nil {
		return nil, err
	}

	var (
		newThumbnail model.MediaAsset
		replaced     model.MediaAsset
		updated      *model.Video
	)

	sg := saga.New("update_video", s.logger)
	if in.Thumbnail != nil {
		sg.Step("upload_thumbnail",
			func(ctx context.Context) error {
				asset, err := s.upload(ctx, thumbnailKey(in.Thumbnail.FileName), *in.Thumbnail)
				newThumbnail = asset
				return err
			},
			func(ctx context.Context) error {
				return s.storage.Delete(ctx, newThumbnail.StorageID)
			},
		)
	}
	sg.Step("update_metadata",
		func(ctx context.Context) error {
			p := patch
			if in.Thumbnail != nil {
				p.Thumbnail = &newThumbnail
			}
			v, previous, err := s.videos.UpdateDetails(ctx, videoID, principal, p)
			if err != nil {
				return upstream("update video", err)
			}
			if v == nil {
				return errNoRecord
			}
			updated = v
			replaced = previous
			return nil
		},
		nil,
	)
	if in.Thumbnail != nil {
		// replaced comes from the locked row, so a concurrent swap cannot hide it.
		sg.AfterCommit("delete_old_thumbnail", func(ctx context.Context) error {
			if replaced.StorageID == "" || replaced.StorageID == newThumbnail.StorageID {
				return nil
			}
			return s.storage.Delete(ctx, replaced.StorageID)
		})
	}

	if err := sg.Run(ctx); err != nil {
		return nil, fmt.Errorf("update video: %w", err)
	}

	return updated, nil
}

func (s *videoService) TogglePublish(ctx context.Context, principal, videoID uuid.UUID) (*model.Video, error) {
	if _, err := s.ownedVideo(ctx, principal, videoID); err != nil {
		return nil, err
	}

	video, err := s.videos.TogglePublish(ctx, videoID, principal)
	if err != nil {
		return nil, upstream("toggle publish", err)
	}
	return video, nil
}

// Delete treats the metadata row as the authority: once it is gone the call
// succeeds, whatever happens to the blobs afterwards.
func (s *videoService) Delete(ctx context.Context, principal, videoID uuid.UUID) error {
	if _, err := s.ownedVideo(ctx, principal, videoID); err != nil {
		return err
	}

	var deleted *model.Video

	err := saga.New("delete_video", s.logger).
		WithSubmitter(s.tasks).
		Step("delete_metadata",
			func(ctx context.Context) error {
				v, err := s.videos.DeleteOwned(ctx, videoID, principal)
				if err != nil {
					return upstream("delete video", err)
				}
				if v == nil {
					return errNoRecord
				}
				deleted = v
				return nil
			},
			nil,
		).
		Defer("cleanup_blobs", func(ctx context.Context) error {
			return s.cleanup.PublishBlobCleanup(ctx, repository.BlobCleanupTask{
				VideoID:    deleted.ID,
				StorageIDs: storageIDs(deleted.VideoFile, deleted.Thumbnail),
				Reason:     "video_deleted",
			})
		}).
		Run(ctx)
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}

	return nil
}

func (s *videoService) GetVideo(ctx context.Context, videoID, viewer uuid.UUID) (*model.Video, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, upstream("get video", err)
	}

	s.recordView(ctx, video, viewer)
	return video, nil
}

// recordView increments the counter inline and pushes the watch-history write
// to the background runner.
func (s *videoService) recordView(ctx context.Context, video *model.Video, viewer uuid.UUID) {
	views, err := s.videos.IncrementViews(ctx, video.ID)
	if err != nil {
		s.logger.Warn("failed to increment views",
			"video_id", video.ID,
			"error", err,
		)
	} else {
		video.Views = views
	}

	if viewer == uuid.Nil {
		return
	}
	videoID := video.ID
	s.tasks.Submit("watch_history", func(ctx context.Context) error {
		return s.users.AddToWatchHistory(ctx, viewer, videoID)
	})
}

// ownedVideo loads a video and checks ownership. NotFound is decided before Forbidden.
func (s *videoService) ownedVideo(ctx context.Context, principal, videoID uuid.UUID) (*model.Video, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, upstream("get video", err)
	}
	if err := authorize(principal, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *videoService) validateVideoFile(f FileInput) error {
	if f.Path == "" {
		return model.ErrMissingVideoFile
	}
	if !strings.HasPrefix(f.ContentType, "video/") {
		return ErrUnsupportedVideoType
	}
	if s.cfg.MaxVideoBytes > 0 && f.Size > s.cfg.MaxVideoBytes {
		return ErrVideoTooLarge
	}
	return nil
}

func (s *videoService) validateThumbnail(f FileInput) error {
	if f.Path == "" {
		return model.ErrMissingThumbnail
	}
	if !thumbnailTypes[f.ContentType] {
		return ErrUnsupportedImageType
	}
	if s.cfg.MaxThumbnailBytes > 0 && f.Size > s.cfg.MaxThumbnailBytes {
		return ErrThumbnailTooLarge
	}
	return nil
}

func (s *videoService) probeDuration(ctx context.Context, filePath string) (float64, error) {
	d, err := s.prober.Duration(ctx, filePath)
	if err != nil {
		if errors.Is(err, probe.ErrUnreadable) {
			return 0, fmt.Errorf("%w: %w", ErrUnreadableVideo, err)
		}
		return 0, fmt.Errorf("probe video: %w: %w", model.ErrInternal, err)
	}
	return d, nil
}

// upload streams a spooled file to blob storage.
func (s *videoService) upload(ctx context.Context, key string, f FileInput) (model.MediaAsset, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return model.MediaAsset{}, fmt.Errorf("open upload: %w: %w", model.ErrInternal, err)
	}
	defer func() { _ = file.Close() }()

	asset, err := s.storage.Upload(ctx, key, file, f.Size, f.ContentType)
	if err != nil {
		return model.MediaAsset{}, upstream("storage upload", err)
	}
	return asset, nil
}

// videoKey creates the storage key for a video file.
// Format: videos/{uuid}/{filename}
func videoKey(filename string) string {
	return path.Join("videos", uuid.New().String(), baseName(filename, "video"))
}

// thumbnailKey creates the storage key for a thumbnail.
// Format: thumbnails/{uuid}/{filename}
func thumbnailKey(filename string) string {
	return path.Join("thumbnails", uuid.New().String(), baseName(filename, "thumbnail"))
}

func baseName(filename, fallback string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return fallback
	}
	return name
}

func storageIDs(assets ...model.MediaAsset) []string {
	ids := make([]string, 0, len(assets))
	for _, a := range assets {
		if a.StorageID != "" {
			ids = append(ids, a.StorageID)
		}
	}
	return ids
}
