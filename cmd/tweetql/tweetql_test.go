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

package main

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// execute runs the root command with args and returns what it printed to stdout and stderr.
func execute(stdin string, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

var _ = Describe("tweetql", func() {
	var (
		dir        string
		configFile string
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "tweetql-cmd")
		Expect(err).ShouldNot(HaveOccurred())

		configFile = filepath.Join(dir, "tweetql.yaml")
		Expect(os.WriteFile(configFile, []byte(`
server:
  addr: "127.0.0.1:0"
  metrics_addr: "127.0.0.1:0"
  shutdown_timeout: 2s
movies:
  base_url: "http://127.0.0.1:1"
log:
  level: warn
`), 0600)).Should(Succeed())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).Should(Succeed())
	})

	It("has serve, query and schema commands", func() {
		cmd := newRootCommand()
		for _, name := range []string{"serve", "query", "schema"} {
			subCmd, _, err := cmd.Find([]string{name})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(subCmd.Name()).Should(Equal(name))
		}
		Expect(cmd.PersistentFlags().Lookup("config")).ShouldNot(BeNil())
	})

	Describe("schema", func() {
		It("prints the SDL", func() {
			stdout, _, err := execute("", "schema", "--config", configFile)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(stdout).Should(ContainSubstring("type Query {\n  allMovies: [Movie!]!\n"))
			Expect(stdout).Should(ContainSubstring("  postTweet(text: String!, userId: ID!): Tweet\n"))
		})
	})

	Describe("query", func() {
		It("prints the result", func() {
			stdout, _, err := execute("", "query", "--config", configFile,
				"{ allUsers { fullName } }")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(stdout).Should(MatchJSON(`{
				"data": { "allUsers": [{ "fullName": "nico las" }, { "fullName": "jungbin park" }] }
			}`))
		})

		It("accepts variables and operation name", func() {
			stdout, _, err := execute("", "query", "--config", configFile,
				"--variables", `{"id": "1"}`,
				"--operation", "Second",
				`query First { allUsers { id } } query Second($id: ID!) { tweet(id: $id) { text } }`)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(stdout).Should(MatchJSON(`{ "data": { "tweet": { "text": "first one" } } }`))
		})

		It("reads the document from standard input", func() {
			stdout, _, err := execute(`mutation { deleteTweet(id: "2") }`, "query", "--config", configFile, "-")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(stdout).Should(MatchJSON(`{ "data": { "deleteTweet": true } }`))
		})

		It("loads the seed file named in the configuration", func() {
			seedFile := filepath.Join(dir, "seed.yaml")
			Expect(os.WriteFile(seedFile, []byte(`
users:
  - id: "5"
    firstName: grace
    lastName: hopper
tweets: []
`), 0600)).Should(Succeed())
			Expect(os.WriteFile(configFile, []byte("seed_file: "+seedFile+"\n"), 0600)).Should(Succeed())

			stdout, _, err := execute("", "query", "--config", configFile,
				"{ allUsers { fullName } allTweets { id } }")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(stdout).Should(MatchJSON(`{
				"data": { "allUsers": [{ "fullName": "grace hopper" }], "allTweets": [] }
			}`))
		})

		It("fails on invalid variables", func() {
			_, _, err := execute("", "query", "--config", configFile, "--variables", "{", "{ allUsers { id } }")
			Expect(err).Should(MatchError(ContainSubstring("invalid variables")))
		})

		It("prints errors and fails", func() {
			stdout, _, err := execute("", "query", "--config", configFile, "{ allUsers { password } }")
			Expect(err).Should(MatchError("query completed with 1 error(s)"))
			Expect(stdout).Should(ContainSubstring(`Cannot query field \"password\" on type \"User\".`))
		})

		It("fails on invalid configuration", func() {
			Expect(os.WriteFile(configFile, []byte("log:\n  level: loud\n"), 0600)).Should(Succeed())
			_, _, err := execute("", "query", "--config", configFile, "{ allUsers { id } }")
			Expect(err).Should(HaveOccurred())
		})
	})

	Describe("serve", func() {
		It("serves GraphQL and metrics until canceled", func() {
			cmd := newRootCommand()
			var stderr bytes.Buffer
			cmd.SetErr(&stderr)

			type addrs struct {
				graphql, metrics net.Addr
			}
			listening := make(chan addrs, 1)
			opts := &serveOptions{
				rootOptions: &rootOptions{configFile: configFile},
				onListen: func(addr, metricsAddr net.Addr) {
					listening <- addrs{addr, metricsAddr}
				},
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			done := make(chan error, 1)
			go func() {
				defer GinkgoRecover()
				done <- runServe(ctx, cmd, opts)
			}()

			var bound addrs
			Eventually(listening, "5s").Should(Receive(&bound))

			resp, err := http.Post("http://"+bound.graphql.String()+"/graphql", "application/json",
				strings.NewReader(`{"query":"{ tweet(id: \"2\") { author { fullName } } }"}`))
			Expect(err).ShouldNot(HaveOccurred())
			body, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			Expect(err).ShouldNot(HaveOccurred())
			Expect(resp.StatusCode).Should(Equal(http.StatusOK))
			Expect(body).Should(MatchJSON(`{ "data": { "tweet": { "author": { "fullName": "nico las" } } } }`))

			resp, err = http.Get("http://" + bound.metrics.String() + "/metrics")
			Expect(err).ShouldNot(HaveOccurred())
			body, err = io.ReadAll(resp.Body)
			resp.Body.Close()
			Expect(err).ShouldNot(HaveOccurred())
			Expect(string(body)).Should(ContainSubstring(`tweetql_http_requests_total{code="200",handler="graphql",method="post"} 1`))
			Expect(string(body)).Should(ContainSubstring(`tweetql_graphql_field_resolutions_total{field="fullName",object="User",outcome="success"} 1`))
			Expect(string(body)).Should(ContainSubstring(`tweetql_graphql_operations_total{outcome="success",type="query"} 1`))

			cancel()
			Eventually(done, "5s").Should(Receive(BeNil()))
		})
	})
})
