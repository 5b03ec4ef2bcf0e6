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

// Package movies fetches the movie catalog from a YTS-style HTTP API.
package movies

// Movie is a catalog entry as reported by the provider. Fields are passed through untouched.
type Movie struct {
	ID                      int      `json:"id" graphql:"id"`
	URL                     string   `json:"url" graphql:"url"`
	ImdbCode                string   `json:"imdb_code" graphql:"imdb_code"`
	Title                   string   `json:"title" graphql:"title"`
	TitleEnglish            string   `json:"title_english" graphql:"title_english"`
	TitleLong               string   `json:"title_long" graphql:"title_long"`
	Slug                    string   `json:"slug" graphql:"slug"`
	Year                    int      `json:"year" graphql:"year"`
	Rating                  float64  `json:"rating" graphql:"rating"`
	Runtime                 float64  `json:"runtime" graphql:"runtime"`
	Genres                  []string `json:"genres" graphql:"genres"`
	Summary                 *string  `json:"summary" graphql:"summary"`
	DescriptionFull         string   `json:"description_full" graphql:"description_full"`
	Synopsis                *string  `json:"synopsis" graphql:"synopsis"`
	YtTrailerCode           string   `json:"yt_trailer_code" graphql:"yt_trailer_code"`
	Language                string   `json:"language" graphql:"language"`
	MpaRating               string   `json:"mpa_rating" graphql:"mpa_rating"`
	BackgroundImage         string   `json:"background_image" graphql:"background_image"`
	BackgroundImageOriginal string   `json:"background_image_original" graphql:"background_image_original"`
	SmallCoverImage         string   `json:"small_cover_image" graphql:"small_cover_image"`
	MediumCoverImage        string   `json:"medium_cover_image" graphql:"medium_cover_image"`
	LargeCoverImage         string   `json:"large_cover_image" graphql:"large_cover_image"`
}

// envelope is the wrapper around every provider response. Data is nil when the response carries no
// "data" object.
type envelope struct {
	Data *struct {
		Movies *[]Movie `json:"movies"`
		Movie  *Movie   `json:"movie"`
	} `json:"data"`
}
