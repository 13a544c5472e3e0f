// Package petfeed embeds the pet discovery feed engine in a Go process,
// reading listings straight from Postgres or SQLite.
//
//	client, _ := petfeed.New(ctx, petfeed.WithPostgres(dsn))
//	defer client.Close()
//
//	page, _ := client.Feed(ctx, petfeed.FeedRequest{
//	    RequesterID: userID,
//	    Lat:         petfeed.Float(40.71),
//	    Lng:         petfeed.Float(-74.0),
//	    Species:     "dog",
//	})
//	next, _ := client.Feed(ctx, petfeed.FeedRequest{RequesterID: userID, Cursor: page.NextCursor})
//
// Invalid request values are dropped, never rejected: an out-of-range coordinate
// disables the radius filter and a malformed cursor restarts from the top.
package petfeed
