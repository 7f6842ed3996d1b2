// Package discovery provides a relevance-scored content discovery engine:
// search and filtering over a content corpus, autocompletion, similarity
// based recommendations and engagement-driven trending.
//
// # Database-backed engine
//
//	eng, _ := discovery.New(discovery.WithRedis("localhost:6379", ""))
//	defer eng.Close()
//	results, _ := eng.Search(ctx, discovery.SearchRequest{Query: "anchoring"})
//
// # Static in-memory corpus
//
//	eng, _ := discovery.New(discovery.WithSources(items...))
//	related, _ := eng.Related(ctx, "anchoring-bias", 5)
//
// Engagement events feed the trending ranking:
//
//	eng.RecordView(ctx, "anchoring-bias", 45)
//	top := eng.Trending(10)
package discovery
