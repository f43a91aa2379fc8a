package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
)

// Well-known keys.
const (
	KeyVariant        = "preferred-variant"
	KeyRecentTopics   = "recent-topics"
	KeyRecentSearches = "leetmetric-recent-searches"
)

// RecentLimit caps every recent list.
const RecentLimit = 5

// LoadRecent returns the JSON list stored at key, newest first. A missing or
// malformed value reads as an empty list.
func LoadRecent(ctx context.Context, store SettingsStore, key string) ([]string, error) {
	raw, found, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return []string{}, nil
	}
	return decodeRecent(raw), nil
}

// PushRecent moves item to the front of the list at key, dropping duplicates
// and trimming to limit. It returns the updated list.
func PushRecent(ctx context.Context, store SettingsStore, key, item string, limit int) ([]string, error) {
	var updated []string
	err := store.Update(ctx, key, func(current string, found bool) (string, error) {
		var list []string
		if found {
			list = decodeRecent(current)
		}
		updated = pushFront(list, item, limit)
		data, err := json.Marshal(updated)
		if err != nil {
			return "", fmt.Errorf("encoding recent list: %w", err)
		}
		return string(data), nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func decodeRecent(raw string) []string {
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil || list == nil {
		return []string{}
	}
	return list
}

func pushFront(list []string, item string, limit int) []string {
	out := make([]string, 0, len(list)+1)
	out = append(out, item)
	for _, existing := range list {
		if existing != item {
			out = append(out, existing)
		}
	}
	if limit > 0 && len(out) > limit {
		out = slices.Clip(out[:limit])
	}
	return out
}
