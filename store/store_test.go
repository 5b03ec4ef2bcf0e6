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

package store_test

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/botobag/tweetql/store"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Store", func() {
	var s *store.Store

	BeforeEach(func() {
		s = store.NewWithSeed()
	})

	It("holds the built-in seed", func() {
		Expect(s.ListUsers()).Should(Equal([]store.User{
			{ID: "1", FirstName: "jungbin", LastName: "park"},
			{ID: "2", FirstName: "nico", LastName: "las"},
		}))
		Expect(s.ListTweets()).Should(Equal([]store.Tweet{
			{ID: "1", Text: "first one", UserID: "1"},
			{ID: "2", Text: "second one", UserID: "2"},
		}))
	})

	It("returns copies", func() {
		tweets := s.ListTweets()
		tweets[0].Text = "changed"
		Expect(s.ListTweets()[0].Text).Should(Equal("first one"))
	})

	It("returns empty non-nil lists for an empty store", func() {
		empty := store.New(nil, nil)
		Expect(empty.ListUsers()).ShouldNot(BeNil())
		Expect(empty.ListUsers()).Should(BeEmpty())
		Expect(empty.ListTweets()).ShouldNot(BeNil())
		Expect(empty.ListTweets()).Should(BeEmpty())
	})

	It("finds users and tweets by id", func() {
		user, ok := s.FindUser("2")
		Expect(ok).Should(BeTrue())
		Expect(user.FirstName).Should(Equal("nico"))

		_, ok = s.FindUser("3")
		Expect(ok).Should(BeFalse())

		tweet, ok := s.FindTweet("1")
		Expect(ok).Should(BeTrue())
		Expect(tweet.Text).Should(Equal("first one"))

		_, ok = s.FindTweet("01")
		Expect(ok).Should(BeFalse())
	})

	It("inserts and removes tweets", func() {
		s.InsertTweet(store.Tweet{ID: "3", Text: "hello", UserID: "1"})
		Expect(s.ListTweets()).Should(HaveLen(3))

		tweet, ok := s.FindTweet("3")
		Expect(ok).Should(BeTrue())
		Expect(tweet).Should(Equal(store.Tweet{ID: "3", Text: "hello", UserID: "1"}))

		Expect(s.RemoveTweet("1")).Should(BeTrue())
		Expect(s.RemoveTweet("1")).Should(BeFalse())
		Expect(s.ListTweets()).Should(Equal([]store.Tweet{
			{ID: "2", Text: "second one", UserID: "2"},
			{ID: "3", Text: "hello", UserID: "1"},
		}))
	})

	It("is safe for concurrent use", func() {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer GinkgoRecover()
				defer wg.Done()
				s.InsertTweet(store.Tweet{ID: strconv.Itoa(100 + i), UserID: "1"})
				s.ListTweets()
				s.FindUser("1")
			}(i)
		}
		wg.Wait()
		Expect(s.ListTweets()).Should(HaveLen(10))
	})

	Describe("seed file", func() {
		var dir string

		BeforeEach(func() {
			var err error
			dir, err = os.MkdirTemp("", "tweetql-seed")
			Expect(err).ShouldNot(HaveOccurred())
		})

		AfterEach(func() {
			Expect(os.RemoveAll(dir)).Should(Succeed())
		})

		It("loads users and tweets", func() {
			path := filepath.Join(dir, "seed.yaml")
			Expect(os.WriteFile(path, []byte(`
users:
  - id: "7"
    firstName: ada
    lastName: lovelace
tweets:
  - id: "10"
    text: notes
    userId: "7"
  - id: "9"
    text: dangling
    userId: "42"
`), 0600)).Should(Succeed())

			s, err := store.LoadSeedFile(path)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(s.ListUsers()).Should(Equal([]store.User{
				{ID: "7", FirstName: "ada", LastName: "lovelace"},
			}))
			Expect(s.ListTweets()).Should(Equal([]store.Tweet{
				{ID: "10", Text: "notes", UserID: "7"},
				{ID: "9", Text: "dangling", UserID: "42"},
			}))
		})

		It("reports missing file", func() {
			_, err := store.LoadSeedFile(filepath.Join(dir, "missing.yaml"))
			Expect(err).Should(MatchError(os.ErrNotExist))
		})

		It("rejects duplicate and malformed ids", func() {
			_, err := store.ParseSeed([]byte(`
users:
  - id: "1"
  - id: "1"
tweets:
  - id: "x"
  - id: "2"
  - id: "2"
`))
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring(`duplicate user id "1"`))
			Expect(err.Error()).Should(ContainSubstring(`tweet id "x" is not a number`))
			Expect(err.Error()).Should(ContainSubstring(`duplicate tweet id "2"`))
		})

		It("rejects malformed YAML", func() {
			_, err := store.ParseSeed([]byte("users: {"))
			Expect(err).Should(MatchError(ContainSubstring("parse seed")))
		})
	})
})
