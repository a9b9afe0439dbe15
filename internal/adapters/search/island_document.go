package search

import (
	"strconv"
	"strings"

	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
)

// MaxIndexedTags caps the tag list stored with each destination
const MaxIndexedTags = 50

// stopWords are dropped from tags
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "for": {}, "in": {}, "its": {}, "of": {},
	"on": {}, "one": {}, "the": {}, "to": {}, "with": {},
}

// buildIslandTags returns the lower-cased distinct words of an island's
// name, location and description, in first-seen order.
func buildIslandTags(island *entities.Island) []string {
	if island == nil {
		return nil
	}

	seen := make(map[string]struct{})
	tags := make([]string, 0, 16)
	for _, field := range []string{island.Name, island.Location, island.Description} {
		for _, word := range strings.FieldsFunc(strings.ToLower(field), splitWord) {
			word = strings.TrimSuffix(word, "'s")
			if len(word) < 2 {
				continue
			}
			if _, stop := stopWords[word]; stop {
				continue
			}
			if _, dup := seen[word]; dup {
				continue
			}
			seen[word] = struct{}{}
			tags = append(tags, word)
			if len(tags) == MaxIndexedTags {
				return tags
			}
		}
	}
	return tags
}

func splitWord(r rune) bool {
	return !(r == '\'' || r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
}

func islandDocument(island *entities.Island) map[string]interface{} {
	return map[string]interface{}{
		"id":          strconv.FormatInt(island.ID, 10),
		"island_id":   island.ID,
		"name":        island.Name,
		"description": island.Description,
		"location":    island.Location,
		"image_url":   island.ImageURL,
		"tags":        buildIslandTags(island),
	}
}

// islandFromDocument rebuilds an island from a search hit. Typesense returns
// numbers as float64.
func islandFromDocument(doc map[string]interface{}) *entities.Island {
	island := &entities.Island{}
	switch v := doc["island_id"].(type) {
	case float64:
		island.ID = int64(v)
	case int64:
		island.ID = v
	}
	if island.ID == 0 {
		if id, ok := doc["id"].(string); ok {
			island.ID, _ = strconv.ParseInt(id, 10, 64)
		}
	}
	island.Name, _ = doc["name"].(string)
	island.Description, _ = doc["description"].(string)
	island.Location, _ = doc["location"].(string)
	island.ImageURL, _ = doc["image_url"].(string)
	return island
}
