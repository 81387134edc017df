// Package customdict keeps user-added words in a redis set and turns them into a lexicon.
package customdict

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"spellpipe/internal/lexicon"
)

// DefaultKey is the redis set holding the words.
const DefaultKey = "spellpipe:custom_dict"

// CustomDict wraps a redis client to store custom dictionary words.
type CustomDict struct {
	client *redis.Client
	key    string
}

// New creates a CustomDict on client. An empty key selects DefaultKey.
func New(client *redis.Client, key string) *CustomDict {
	if key == "" {
		key = DefaultKey
	}
	return &CustomDict{client: client, key: key}
}

func normalize(word string) (string, error) {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" || strings.ContainsAny(w, " \t\n") {
		return "", fmt.Errorf("invalid custom word %q", word)
	}
	return w, nil
}

// Add inserts a word into the custom dictionary.
func (cd *CustomDict) Add(ctx context.Context, word string) error {
	w, err := normalize(word)
	if err != nil {
		return err
	}
	return cd.client.SAdd(ctx, cd.key, w).Err()
}

// Remove deletes a word from the custom dictionary.
func (cd *CustomDict) Remove(ctx context.Context, word string) error {
	w, err := normalize(word)
	if err != nil {
		return err
	}
	return cd.client.SRem(ctx, cd.key, w).Err()
}

// All returns all words stored in the custom dictionary.
func (cd *CustomDict) All(ctx context.Context) ([]string, error) {
	return cd.client.SMembers(ctx, cd.key).Result()
}

// Lexicon snapshots the stored words into a read-only Basic lexicon.
func (cd *CustomDict) Lexicon(ctx context.Context) (*lexicon.Basic, error) {
	words, err := cd.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load custom words: %w", err)
	}
	return lexicon.NewBasic(false, words...), nil
}
