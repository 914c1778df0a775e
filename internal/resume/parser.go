// Package resume turns uploaded resume files into the structured profile the
// match scorer consumes: raw text, recognized skills, and years of
// experience.
package resume

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Profile is the structured form of one uploaded resume.
type Profile struct {
	RawText         string   `json:"raw_text"`
	Skills          []string `json:"skills"`
	YearsExperience int      `json:"years_experience"`
}

var (
	wordPattern = regexp.MustCompile(`\b\w+\b`)

	experiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\+?\s+years? of experience`),
		regexp.MustCompile(`(?i)experience\s+of\s+(\d+)\s+years`),
		regexp.MustCompile(`(?i)worked\s+for\s+(\d+)\s+years`),
	}
)

// Parse extracts text from the file and derives skills and experience from
// it. The vocabulary is the deduplicated lower-case skill list supplied by
// the jobs store.
func Parse(filename string, data []byte, vocab []string) (*Profile, error) {
	text, err := ExtractText(filename, data)
	if err != nil {
		return nil, err
	}

	return &Profile{
		RawText:         text,
		Skills:          ExtractSkills(text, vocab),
		YearsExperience: ExtractExperienceYears(text),
	}, nil
}

// ExtractSkills matches the vocabulary against the text. Single-word skills
// match on word boundaries; multi-word skills match as substrings. The
// returned list is lower-case, deduplicated, and sorted.
func ExtractSkills(text string, vocab []string) []string {
	lowered := strings.ToLower(text)

	words := make(map[string]struct{})
	for _, word := range wordPattern.FindAllString(lowered, -1) {
		words[word] = struct{}{}
	}

	found := make(map[string]struct{})
	for _, skill := range vocab {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill == "" {
			continue
		}

		if strings.ContainsRune(skill, ' ') {
			if strings.Contains(lowered, skill) {
				found[skill] = struct{}{}
			}
			continue
		}

		if _, ok := words[skill]; ok {
			found[skill] = struct{}{}
		}
	}

	skills := make([]string, 0, len(found))
	for skill := range found {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	return skills
}

// ExtractExperienceYears finds the first experience statement in the text
// and returns its year count, or 0 when no pattern matches.
func ExtractExperienceYears(text string) int {
	for _, pattern := range experiencePatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		years, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		return years
	}
	return 0
}
