package task

import (
	"context"
	"sort"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"

	"taskpalette/pkg/latency"
)

// SuggestLimit caps a suggestion result. The palette shows at most five rows.
const SuggestLimit = 5

// Suggest ranks tasks against a free-text query with fzf's fuzzy matcher,
// scoring title, description and app ids and keeping the best field score per
// task. Ties keep store order. An empty query is not a search: it returns the
// first tasks in store order ("recent tasks").
//
// The ranking is recomputed from the live list on every call; nothing
// persists between queries.
func (s *Service) Suggest(ctx context.Context, query string, limit int) ([]*Task, error) {
	if limit <= 0 || limit > SuggestLimit {
		limit = SuggestLimit
	}

	if err := s.delay.Wait(ctx, latency.OpList); err != nil {
		return nil, err
	}

	tasks := make([]*Task, 0)
	if err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if len(tasks) > limit {
			tasks = tasks[:limit]
		}
		return tasks, nil
	}

	pattern := []rune(strings.ToLower(query))
	slab := util.MakeSlab(100*1024, 2048)

	type scored struct {
		task  *Task
		score int
	}

	matches := make([]scored, 0, len(tasks))
	for _, t := range tasks {
		best := 0
		for _, field := range searchFields(t) {
			if sc := fuzzyScore(field, pattern, slab); sc > best {
				best = sc
			}
		}
		if best > 0 {
			matches = append(matches, scored{task: t, score: best})
		}
	}

	// Stable sort: equal scores stay in store order.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]*Task, len(matches))
	for i, m := range matches {
		out[i] = m.task
	}
	return out, nil
}

func searchFields(t *Task) []string {
	fields := make([]string, 0, 2+len(t.Apps))
	fields = append(fields, t.Title, t.Description)
	fields = append(fields, t.Apps...)
	return fields
}

// fuzzyScore runs fzf's FuzzyMatchV2 over a lowercased haystack. A zero
// score means no match.
func fuzzyScore(text string, pattern []rune, slab *util.Slab) int {
	if text == "" || len(pattern) == 0 {
		return 0
	}

	chars := util.ToChars([]byte(strings.ToLower(text)))
	result, _ := algo.FuzzyMatchV2(false, true, true, &chars, pattern, false, slab)
	if result.Score <= 0 {
		return 0
	}
	return result.Score
}
