/**
 * Copyright (c) 2018, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package store holds users and tweets in memory.
package store

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// User is an author of tweets. Users are created from seed data only and never change.
type User struct {
	ID        string `yaml:"id" graphql:"id"`
	FirstName string `yaml:"firstName" graphql:"firstName"`
	LastName  string `yaml:"lastName" graphql:"lastName"`
}

// Tweet is a short message posted by a user. UserID is not checked against the users in the store.
type Tweet struct {
	ID     string `yaml:"id" graphql:"id"`
	Text   string `yaml:"text" graphql:"text"`
	UserID string `yaml:"userId" graphql:"userId"`
}

// Store is the authoritative holder of users and tweets. Every method is safe for concurrent use and
// atomic with respect to the others.
type Store struct {
	mu     sync.RWMutex
	users  []User
	tweets []Tweet
}

// New creates a store that holds copies of users and tweets.
func New(users []User, tweets []Tweet) *Store {
	return &Store{
		users:  append(make([]User, 0, len(users)), users...),
		tweets: append(make([]Tweet, 0, len(tweets)), tweets...),
	}
}

// SeedUsers returns the users of the built-in seed.
func SeedUsers() []User {
	return []User{
		{ID: "1", FirstName: "jungbin", LastName: "park"},
		{ID: "2", FirstName: "nico", LastName: "las"},
	}
}

// SeedTweets returns the tweets of the built-in seed.
func SeedTweets() []Tweet {
	return []Tweet{
		{ID: "1", Text: "first one", UserID: "1"},
		{ID: "2", Text: "second one", UserID: "2"},
	}
}

// NewWithSeed creates a store with the built-in seed.
func NewWithSeed() *Store {
	return New(SeedUsers(), SeedTweets())
}

// Seed is the layout of a seed file.
type Seed struct {
	Users  []User  `yaml:"users"`
	Tweets []Tweet `yaml:"tweets"`
}

// ParseSeed decodes seed data in YAML and creates a store with it.
func ParseSeed(data []byte) (*Store, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if err := seed.validate(); err != nil {
		return nil, err
	}
	return New(seed.Users, seed.Tweets), nil
}

// LoadSeedFile reads the seed file at path and creates a store with it.
func LoadSeedFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return ParseSeed(data)
}

func (seed *Seed) validate() error {
	var errs []error

	userIDs := make(map[string]bool, len(seed.Users))
	for _, user := range seed.Users {
		switch {
		case len(strings.TrimSpace(user.ID)) == 0:
			errs = append(errs, errors.New("seed: user without id"))
		case userIDs[user.ID]:
			errs = append(errs, fmt.Errorf("seed: duplicate user id %q", user.ID))
		}
		userIDs[user.ID] = true
	}

	tweetIDs := make(map[string]bool, len(seed.Tweets))
	for _, tweet := range seed.Tweets {
		switch {
		case !IsNumericID(tweet.ID):
			errs = append(errs, fmt.Errorf("seed: tweet id %q is not a number", tweet.ID))
		case tweetIDs[tweet.ID]:
			errs = append(errs, fmt.Errorf("seed: duplicate tweet id %q", tweet.ID))
		}
		tweetIDs[tweet.ID] = true
	}

	return errors.Join(errs...)
}

// ListUsers returns a copy of all users in storage order.
func (s *Store) ListUsers() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]User, 0, len(s.users)), s.users...)
}

// ListTweets returns a copy of all tweets in storage order.
func (s *Store) ListTweets() []Tweet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]Tweet, 0, len(s.tweets)), s.tweets...)
}

// FindUser looks up the user with the given id.
func (s *Store) FindUser(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.ID == id {
			return user, true
		}
	}
	return User{}, false
}

// FindTweet looks up the tweet with the given id.
func (s *Store) FindTweet(id string) (Tweet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, tweet := range s.tweets {
		if tweet.ID == id {
			return tweet, true
		}
	}
	return Tweet{}, false
}

// InsertTweet appends tweet. The caller guarantees that its id is not in use.
func (s *Store) InsertTweet(tweet Tweet) {
	s.mu.Lock()
	s.tweets = append(s.tweets, tweet)
	s.mu.Unlock()
}

// RemoveTweet removes the tweet with the given id and reports whether there was one.
func (s *Store) RemoveTweet(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, tweet := range s.tweets {
		if tweet.ID == id {
			s.tweets = append(s.tweets[:i], s.tweets[i+1:]...)
			return true
		}
	}
	return false
}
