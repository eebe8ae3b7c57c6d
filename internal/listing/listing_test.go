// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package listing

import (
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ndss-spider/pkg/types"
)

const sampleListing = `<html><body>
<div class="container">
  <h2>Summer Cycle Accepted Papers</h2>
  <div class="tag-box rel-paper">
    <h3 class="blog-post-title">  Fuzzing the Kernel  </h3>
    <p>Alice Smith (MIT), Bob Jones (CMU)</p>
    <p>Second paragraph is ignored</p>
    <a class="paper-link-abs" href="https://www.ndss-symposium.org/ndss-paper/fuzzing-the-kernel/">More</a>
  </div>
  <div class="tag-box rel-paper">
    <h3 class="blog-post-title">Side Channels Everywhere</h3>
    <p>Carol White</p>
    <a class="paper-link-abs" href="/ndss-paper/side-channels/">More</a>
  </div>
  <h2>Fall Cycle Accepted Papers</h2>
  <div class="tag-box rel-paper">
    <h3 class="blog-post-title">Private Set Intersection at Scale</h3>
    <p>Dave Brown</p>
    <a class="paper-link-abs" href="https://www.ndss-symposium.org/ndss-paper/psi/">More</a>
  </div>
</div>
</body></html>`

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestParse_SampleListing(t *testing.T) {
	base := mustURL(t, "https://www.ndss-symposium.org/ndss2024/accepted-papers/")

	papers, err := Parse(strings.NewReader(sampleListing), base)
	require.NoError(t, err)
	require.Len(t, papers, 3)

	assert.Equal(t, types.Paper{
		Title:      "Fuzzing the Kernel",
		Authors:    "Alice Smith (MIT), Bob Jones (CMU)",
		DetailsURL: "https://www.ndss-symposium.org/ndss-paper/fuzzing-the-kernel/",
		Cycle:      types.CycleSummer,
	}, papers[0])

	assert.Equal(t, "Side Channels Everywhere", papers[1].Title)
	assert.Equal(t, "https://www.ndss-symposium.org/ndss-paper/side-channels/", papers[1].DetailsURL)
	assert.Equal(t, types.CycleSummer, papers[1].Cycle)

	assert.Equal(t, "Private Set Intersection at Scale", papers[2].Title)
	assert.Equal(t, types.CycleFall, papers[2].Cycle)
}

func TestParse_CountMatchesContainers(t *testing.T) {
	for _, n := range []int{0, 1, 5, 17} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			var b strings.Builder
			b.WriteString("<html><body><h2>Summer Cycle</h2>")
			for i := 0; i < n; i++ {
				if i == n/2 {
					b.WriteString("<h2>Fall Cycle</h2>")
				}
				fmt.Fprintf(&b, `<div class="tag-box"><h3 class="blog-post-title">Paper %d</h3><p>Author %d</p><a class="paper-link-abs" href="/p/%d">x</a></div>`, i, i, i)
			}
			b.WriteString("</body></html>")

			papers, err := Parse(strings.NewReader(b.String()), nil)
			require.NoError(t, err)
			assert.Len(t, papers, n)
			for _, p := range papers {
				assert.Contains(t, []types.Cycle{types.CycleSummer, types.CycleFall, types.CycleUnknown}, p.Cycle)
			}
		})
	}
}

func TestParse_CycleFromPrecedingHeading(t *testing.T) {
	tests := []struct {
		name string
		html string
		want types.Cycle
	}{
		{
			"fall heading",
			`<h2>Fall Cycle</h2><div class="tag-box"><h3 class="blog-post-title">T</h3></div>`,
			types.CycleFall,
		},
		{
			"summer heading",
			`<h2>Papers from the Summer deadline</h2><div class="tag-box"><h3 class="blog-post-title">T</h3></div>`,
			types.CycleSummer,
		},
		{
			"no heading",
			`<div class="tag-box"><h3 class="blog-post-title">T</h3></div>`,
			types.CycleUnknown,
		},
		{
			"heading without cycle name",
			`<h2>Accepted Papers</h2><div class="tag-box"><h3 class="blog-post-title">T</h3></div>`,
			types.CycleUnknown,
		},
		{
			"heading only after box",
			`<div class="tag-box"><h3 class="blog-post-title">T</h3></div><h2>Fall Cycle</h2>`,
			types.CycleUnknown,
		},
		{
			"heading in an earlier section",
			`<section><h2>Fall Cycle</h2></section><section><div><div class="tag-box"><h3 class="blog-post-title">T</h3></div></div></section>`,
			types.CycleFall,
		},
		{
			"nearest heading wins",
			`<h2>Summer Cycle</h2><h2>Fall Cycle</h2><div class="tag-box"><h3 class="blog-post-title">T</h3></div>`,
			types.CycleFall,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			papers, err := Parse(strings.NewReader(tt.html), nil)
			require.NoError(t, err)
			require.Len(t, papers, 1)
			assert.Equal(t, tt.want, papers[0].Cycle)
		})
	}
}

func TestParse_PartialRecordsKept(t *testing.T) {
	html := `<h2>Fall Cycle</h2>
<div class="tag-box"><p>Only Authors</p></div>
<div class="tag-box"><h3 class="blog-post-title">Only Title</h3></div>`

	papers, err := Parse(strings.NewReader(html), nil)
	require.NoError(t, err)
	require.Len(t, papers, 2)

	assert.Empty(t, papers[0].Title)
	assert.Equal(t, "Only Authors", papers[0].Authors)
	assert.Empty(t, papers[0].DetailsURL)
	assert.Equal(t, types.CycleFall, papers[0].Cycle)

	assert.Equal(t, "Only Title", papers[1].Title)
	assert.Empty(t, papers[1].Authors)
}

func TestParse_NoContainers(t *testing.T) {
	papers, err := Parse(strings.NewReader(`<html><body><h2>Summer Cycle</h2><p>Coming soon</p></body></html>`), nil)
	require.NoError(t, err)
	assert.Empty(t, papers)
}

func TestTitles(t *testing.T) {
	html := sampleListing + `<div class="tag-box"><h3 class="blog-post-title">Not Related</h3></div>
<div class="tag-box rel-paper"><p>no title</p></div>`

	titles, err := Titles(strings.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Fuzzing the Kernel",
		"Side Channels Everywhere",
		"Private Set Intersection at Scale",
	}, titles)
}

func TestCountByCycle(t *testing.T) {
	counts := CountByCycle([]types.Paper{
		{Cycle: types.CycleSummer},
		{Cycle: types.CycleSummer},
		{Cycle: types.CycleFall},
	})
	assert.Equal(t, 2, counts[types.CycleSummer])
	assert.Equal(t, 1, counts[types.CycleFall])
	assert.Zero(t, counts[types.CycleUnknown])
}

func TestResolveURL(t *testing.T) {
	base := mustURL(t, "https://example.org/ndss2024/accepted-papers/")
	tests := []struct {
		name string
		base *url.URL
		href string
		want string
	}{
		{"absolute", base, "https://other.org/a", "https://other.org/a"},
		{"root relative", base, "/ndss-paper/x/", "https://example.org/ndss-paper/x/"},
		{"path relative", base, "x/", "https://example.org/ndss2024/accepted-papers/x/"},
		{"nil base", nil, " /x ", "/x"},
		{"empty", base, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveURL(tt.base, tt.href))
		})
	}
}
