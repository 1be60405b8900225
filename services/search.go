package services

import (
	"sort"
	"strings"

	"restaurante360/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

const minSimilarity = 0.7

// normalizeInput lowercases and strips accents so "Higiênização" matches
// "higienizacao".
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

type scoredActivity struct {
	activity models.ActivityTemplate
	score    int
}

// RankActivities keeps the templates matching query and orders them by
// relevance. Typos are tolerated through the vocabulary of all titles and
// descriptions.
func RankActivities(query string, activities []models.ActivityTemplate) []models.ActivityTemplate {
	q := normalizeInput(query)
	if q == "" {
		return activities
	}

	vocab := vocabulary(activities)
	var cm *closestmatch.ClosestMatch
	if len(vocab) > 0 {
		cm = createMatcher(vocab)
	}
	words := strings.Fields(q)

	var scored []scoredActivity
	for _, a := range activities {
		if score := scoreActivity(q, words, a, cm); score > 0 {
			scored = append(scored, scoredActivity{activity: a, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].activity.Title < scored[j].activity.Title
	})

	out := make([]models.ActivityTemplate, len(scored))
	for i, s := range scored {
		out[i] = s.activity
	}
	return out
}

func scoreActivity(q string, words []string, a models.ActivityTemplate, cm *closestmatch.ClosestMatch) int {
	title := normalizeInput(a.Title)
	desc := normalizeInput(a.Description)
	score := 0

	switch {
	case strings.Contains(title, q):
		score += 20
	case strings.Contains(desc, q):
		score += 8
	}
	if calculateSimilarity(q, title) > minSimilarity {
		score += 10
	}

	category := normalizeInput(a.Category)
	for _, w := range words {
		if w == category {
			score += 6
		}
		if cm == nil || len([]rune(w)) < 3 {
			continue
		}
		match := cm.Closest(w)
		if match == "" || calculateSimilarity(w, match) < minSimilarity {
			continue
		}
		switch {
		case containsWord(title, match):
			score += 5
		case containsWord(desc, match):
			score += 2
		}
	}
	return score
}

func vocabulary(activities []models.ActivityTemplate) []string {
	seen := make(map[string]bool)
	var words []string
	for _, a := range activities {
		for _, w := range strings.Fields(normalizeInput(a.Title + " " + a.Description)) {
			w = strings.Trim(w, ".,;:!?()\"'")
			if len([]rune(w)) < 3 || seen[w] {
				continue
			}
			seen[w] = true
			words = append(words, w)
		}
	}
	sort.Strings(words)
	return words
}

func containsWord(text, word string) bool {
	for _, w := range strings.Fields(text) {
		if strings.Trim(w, ".,;:!?()\"'") == word {
			return true
		}
	}
	return false
}
