// Package tags нормализует пользовательский ввод тегов и строит
// общий индекс тегов по всем статьям.
package tags

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Normalize разбивает строку по запятым, обрезает пробелы и выкидывает пустые куски.
// Повторы убираются, порядок первого вхождения сохраняется
func Normalize(input string) []string {
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}

// Source - всё, что умеет отдать наборы тегов по каждой статье
type Source interface {
	ListTagSets(ctx context.Context) ([][]string, error)
}

// Index строит список различных тегов по требованию. Кэша нет:
// каждый вызов проходит по всем статьям.
type Index struct {
	source Source
}

func NewIndex(source Source) *Index {
	return &Index{source: source}
}

// Distinct возвращает все различные теги, отсортированные по возрастанию
func (i *Index) Distinct(ctx context.Context) ([]string, error) {
	sets, err := i.source.ListTagSets(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list tags: %w", err)
	}
	return Flatten(sets), nil
}

func Flatten(sets [][]string) []string {
	seen := make(map[string]struct{})
	result := []string{}
	for _, set := range sets {
		for _, tag := range set {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			result = append(result, tag)
		}
	}
	sort.Strings(result)
	return result
}
