// Package gosocial turns a short theme into ready-to-post social media
// content: a caption, post ideas and hashtags.
//
// A Studio drives one session. It translates the theme, asks a Generator
// for content, keeps a bounded history and collects feedback:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/gosocial"
//	    "github.com/ZaguanLabs/gosocial/provider"
//	    "github.com/ZaguanLabs/gosocial/store"
//	)
//
//	func main() {
//	    kv := store.NewInMemoryStore()
//	    history := gosocial.NewHistoryStore(gosocial.KeySlot(kv, gosocial.HistoryKey))
//	    feedback := gosocial.NewFeedbackStore(gosocial.KeySlot(kv, gosocial.FeedbackKey))
//
//	    gen := provider.NewHTTPGenerator(provider.HTTPConfig{
//	        Endpoint: "http://localhost:8080/api/generate",
//	    })
//
//	    studio := gosocial.NewStudio(gen, history, feedback,
//	        gosocial.WithLanguage(gosocial.LangEN),
//	        gosocial.WithTone(gosocial.ToneHype),
//	    )
//
//	    result, err := studio.Submit(context.Background(), "coffee shop opening")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(result.Caption)
//	}
package gosocial
