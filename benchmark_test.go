package gosocial_test

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/ZaguanLabs/gosocial"
	"github.com/ZaguanLabs/gosocial/composer"
	"github.com/ZaguanLabs/gosocial/provider"
	"github.com/ZaguanLabs/gosocial/store"
)

// Benchmarks for performance validation

func benchResult() gosocial.GenerationResult {
	return gosocial.GenerationResult{
		Caption:   "Morning coffee is a ritual worth slowing down for ☕",
		PostIdeas: []string{"Latte art basics", "Beans from around the world", "Home brewing setup", "Café tour", "Cold brew recipe"},
		Hashtags:  []string{"#coffee", "#coffeelover", "#latteart", "#viral", "#morning", "#instagood", "#barista", "#espresso"},
	}
}

func BenchmarkHashText(b *testing.B) {
	text := "Hello World, this is a sample text for hashing"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gosocial.HashText(text)
	}
}

func BenchmarkFingerprint(b *testing.B) {
	r := benchResult()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gosocial.Fingerprint(&r)
	}
}

func BenchmarkTranslate(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gosocial.Translate("palestra in montagna con vista sulla città", gosocial.LangEN)
	}
}

func BenchmarkClassifyAll(b *testing.B) {
	tags := benchResult().Hashtags
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gosocial.ClassifyAll(tags)
	}
}

func BenchmarkFormat(b *testing.B) {
	r := benchResult()
	at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	for _, kind := range []gosocial.ExportKind{gosocial.KindText, gosocial.KindCSV, gosocial.KindMarkdown, gosocial.KindHTML} {
		b.Run(string(kind), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := gosocial.Format(&r, "coffee", at, kind); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkComposer_Compose(b *testing.B) {
	c := composer.New(composer.WithRand(rand.New(rand.NewPCG(1, 2))))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Compose("street food in rome")
	}
}

func BenchmarkHistory_Record(b *testing.B) {
	h := gosocial.NewHistoryStore(gosocial.KeySlot(store.NewInMemoryStore(), gosocial.HistoryKey))
	r := benchResult()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := h.Record(fmt.Sprintf("theme %d", i), r, gosocial.LangEN); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkStudio_Submit(b *testing.B) {
	history := gosocial.NewHistoryStore(gosocial.KeySlot(store.NewInMemoryStore(), gosocial.HistoryKey))
	s := gosocial.NewStudio(provider.NewMockGenerator(), history, nil, gosocial.WithLanguage(gosocial.LangEN))
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Submit(ctx, "coffee"); err != nil {
			b.Fatal(err)
		}
	}
}
