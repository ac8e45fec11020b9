package imagestore

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
)

// Store keeps raw image bytes in redis, decoupled from the relational
// rows. Each owner has a blob per image id plus an append-only list of
// ids acting as the side index. The namespace separates user profile
// images from article attachments ("user" vs "article").
type Store struct {
	client    *redisv9.Client
	namespace string
}

func NewStore(client *redisv9.Client, namespace string) *Store {
	return &Store{client: client, namespace: namespace}
}

// Insert decodes each base64 payload, stores it under a fresh id and
// appends the id to the owner's list. Best-effort per item: on a
// mid-batch failure the ids stored so far are returned with the error.
// RPUSH is atomic per item, so concurrent writers for one owner
// interleave without losing ids.
func (s *Store) Insert(ctx context.Context, ownerID uint, base64Images []string) ([]string, error) {
	imageIDs := make([]string, 0, len(base64Images))

	for _, b64 := range base64Images {
		raw, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return imageIDs, fmt.Errorf("decode image payload failed: %w", err)
		}

		imageID := uuid.NewString()
		if err := s.client.Set(ctx, s.imageKey(ownerID, imageID), raw, 0).Err(); err != nil {
			return imageIDs, fmt.Errorf("redis set image failed: %w", err)
		}
		if err := s.client.RPush(ctx, s.listKey(ownerID), imageID).Err(); err != nil {
			return imageIDs, fmt.Errorf("redis append image id failed: %w", err)
		}
		imageIDs = append(imageIDs, imageID)
	}

	return imageIDs, nil
}

// ListIDs returns the owner's image ids in insertion order.
func (s *Store) ListIDs(ctx context.Context, ownerID uint, firstOnly bool) ([]string, error) {
	stop := int64(-1)
	if firstOnly {
		stop = 0
	}

	ids, err := s.client.LRange(ctx, s.listKey(ownerID), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list image ids failed: %w", err)
	}
	return ids, nil
}

// GetBytes returns the stored blob, or nil when the image is absent.
func (s *Store) GetBytes(ctx context.Context, ownerID uint, imageID string) ([]byte, error) {
	raw, err := s.client.Get(ctx, s.imageKey(ownerID, imageID)).Bytes()
	if err == redisv9.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get image failed: %w", err)
	}
	return raw, nil
}

// Replace overwrites an existing blob. It reports false when the key
// does not already exist; replace never creates.
func (s *Store) Replace(ctx context.Context, ownerID uint, imageID, b64Image string) (bool, error) {
	key := s.imageKey(ownerID, imageID)

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis check image failed: %w", err)
	}
	if exists == 0 {
		return false, nil
	}

	raw, err := base64.StdEncoding.DecodeString(b64Image)
	if err != nil {
		return false, fmt.Errorf("decode image payload failed: %w", err)
	}
	if err := s.client.Set(ctx, key, raw, 0).Err(); err != nil {
		return false, fmt.Errorf("redis set image failed: %w", err)
	}
	return true, nil
}

// Delete removes the given images and their index entries, returning the
// ids that were actually deleted.
func (s *Store) Delete(ctx context.Context, ownerID uint, imageIDs []string) ([]string, error) {
	deleted := make([]string, 0, len(imageIDs))

	for _, imageID := range imageIDs {
		removed, err := s.client.Del(ctx, s.imageKey(ownerID, imageID)).Result()
		if err != nil {
			return deleted, fmt.Errorf("redis delete image failed: %w", err)
		}
		if err := s.client.LRem(ctx, s.listKey(ownerID), 0, imageID).Err(); err != nil {
			return deleted, fmt.Errorf("redis remove image id failed: %w", err)
		}
		if removed > 0 {
			deleted = append(deleted, imageID)
		}
	}

	return deleted, nil
}

// DeleteAll drops every blob of the owner along with the id list.
func (s *Store) DeleteAll(ctx context.Context, ownerID uint) error {
	ids, err := s.client.LRange(ctx, s.listKey(ownerID), 0, -1).Result()
	if err != nil {
		return fmt.Errorf("redis list image ids failed: %w", err)
	}

	for _, imageID := range ids {
		if err := s.client.Del(ctx, s.imageKey(ownerID, imageID)).Err(); err != nil {
			return fmt.Errorf("redis delete image failed: %w", err)
		}
	}
	if err := s.client.Del(ctx, s.listKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("redis delete image list failed: %w", err)
	}
	return nil
}

func (s *Store) listKey(ownerID uint) string {
	return fmt.Sprintf("%s:%d:images", s.namespace, ownerID)
}

func (s *Store) imageKey(ownerID uint, imageID string) string {
	return fmt.Sprintf("%s:%d:image:%s", s.namespace, ownerID, imageID)
}
