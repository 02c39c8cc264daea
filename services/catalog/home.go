package catalog

import (
	"context"
	"log"

	"github.com/sourcegraph/conc/pool"

	"streamhaven/models"
)

// homeRowLimit caps each dashboard row at a swipeable length.
const homeRowLimit = 15

type homeRow struct {
	key   string
	title string
	fetch func(ctx context.Context) (models.Batch, error)
}

func (c *Client) homeRows() []homeRow {
	category := func(cat Category) func(ctx context.Context) (models.Batch, error) {
		return func(ctx context.Context) (models.Batch, error) { return c.Category(ctx, cat, 1) }
	}
	genre := func(id int64) func(ctx context.Context) (models.Batch, error) {
		return func(ctx context.Context) (models.Batch, error) { return c.ByGenre(ctx, models.KindMovie, id, 1) }
	}
	return []homeRow{
		{key: "trending", title: "Trending Movies", fetch: category(CategoryTrending)},
		{key: "topRated", title: "Top Rated Movies", fetch: category(CategoryTopRated)},
		{key: "hottestTVShows", title: "Hottest TV Shows", fetch: category(CategoryPopularTV)},
		{key: "newTVReleases", title: "New TV Releases", fetch: category(CategoryOnTheAir)},
		{key: "kDramas", title: "Korean Dramas", fetch: category(CategoryKDrama)},
		{key: "cDramas", title: "Chinese Dramas", fetch: category(CategoryCDrama)},
		{key: "nowPlaying", title: "Now Playing", fetch: category(CategoryNowPlaying)},
		{key: "upcoming", title: "Coming Soon", fetch: category(CategoryUpcoming)},
		{key: "action", title: "Action Movies", fetch: genre(28)},
		{key: "comedy", title: "Comedy", fetch: genre(35)},
		{key: "horror", title: "Horror", fetch: genre(27)},
		{key: "romance", title: "Romance", fetch: genre(10749)},
		{key: "sciFi", title: "Sci-Fi & Fantasy", fetch: genre(878)},
		{key: "thriller", title: "Thriller", fetch: genre(53)},
		{key: "animation", title: "Animation", fetch: genre(16)},
		{key: "documentary", title: "Documentary", fetch: genre(99)},
	}
}

// HomeSections loads every dashboard row concurrently and waits for all of
// them. A failed request degrades its own row to an empty list instead of
// aborting the batch; the failure is only logged.
func (c *Client) HomeSections(ctx context.Context) (models.HomeSections, error) {
	rows := c.homeRows()
	sections := make([]models.HomeSection, len(rows))

	p := pool.New().WithMaxGoroutines(8)
	for i, row := range rows {
		p.Go(func() {
			section := models.HomeSection{Key: row.key, Title: row.title, Items: []models.MediaItem{}}
			batch, err := row.fetch(ctx)
			if err != nil {
				log.Printf("[catalog] home row %q failed, degrading to empty: %v", row.key, err)
			} else {
				items := batch.Items
				if len(items) > homeRowLimit {
					items = items[:homeRowLimit]
				}
				section.Items = items
			}
			sections[i] = section
		})
	}
	p.Wait()

	return models.HomeSections{Sections: sections}, nil
}
