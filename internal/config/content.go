package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/ilyakaznacheev/cleanenv"
)

//go:embed default_content.json
var defaultContent []byte

// Content is the bot's user-facing text and word rules
type Content struct {
	Messages       Messages      `json:"messages"`
	Buttons        Buttons       `json:"buttons"`
	Errors         ErrorTexts    `json:"errors"`
	RegexPatterns  RegexPatterns `json:"regex_patterns"`
	Commands       []Command     `json:"commands"`
	CorrectAnswers int           `json:"correct_answers" env:"MASTERY_THRESHOLD"`

	sourcePattern *regexp.Regexp
	targetPattern *regexp.Regexp
}

// Messages are the bot replies. Values with verbs are fmt format strings.
type Messages struct {
	Start          string `json:"start_message"`
	About          string `json:"about"`
	Help           string `json:"help"`
	ChooseAction   string `json:"choose_action"`
	QuizPrompt     string `json:"quiz_prompt"`  // %s translation
	Correct        string `json:"correct"`      // %s word, %s translation
	Wrong          string `json:"wrong"`        // %s word
	LearnedWord    string `json:"learned_word"` // %s word
	Continue       string `json:"continue"`
	AddUserWord    string `json:"add_user_word"`
	WordAdded      string `json:"word_added"` // %s word, %s translation
	DeleteUserWord string `json:"delete_user_word"`
	WordDeleted    string `json:"word_deleted"` // %s word
	WordHidden     string `json:"word_hidden"`  // %s word
	Stats          string `json:"stats"`        // %d available, mastered, removed, personal
	Cancelled      string `json:"cancelled"`
}

// Buttons are the labels of the action menu
type Buttons struct {
	TestKnowledge string `json:"test_knowledge"`
	Next          string `json:"next"`
	AddWord       string `json:"add_word"`
	DeleteWord    string `json:"delete_word"`
}

// ErrorTexts are the replies for rejected requests
type ErrorTexts struct {
	AddWordValue           string `json:"add_word_value"`
	InvalidFormat          string `json:"invalid_format"`
	WordExists             string `json:"word_exists"`
	LearnAllWords          string `json:"learn_all_words"`
	WordNotFound           string `json:"word_not_found"`
	NotFoundTranslatedWord string `json:"not_found_translated_word"`
	NoActiveQuestion       string `json:"no_active_question"`
	Internal               string `json:"internal"`
}

// RegexPatterns validate new words. They are matched against the whole text.
type RegexPatterns struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Command is an entry of the bot command menu
type Command struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// LoadContent reads the content document.
// The embedded default is used for every key the file at path leaves out,
// or entirely when path is empty. MASTERY_THRESHOLD overrides correct_answers.
func LoadContent(path string) (*Content, error) {
	var c Content
	if err := json.Unmarshal(defaultContent, &c); err != nil {
		return nil, fmt.Errorf("content: parse default: %w", err)
	}

	if path != "" {
		if err := cleanenv.ReadConfig(path, &c); err != nil {
			return nil, fmt.Errorf("content: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&c); err != nil {
		return nil, fmt.Errorf("content: read env: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("content: validate: %w", err)
	}

	return &c, nil
}

// Validate checks the threshold and compiles the word patterns
func (c *Content) Validate() error {
	if c.CorrectAnswers < 1 {
		return fmt.Errorf("correct_answers must be at least 1, got %d", c.CorrectAnswers)
	}

	var err error
	if c.sourcePattern, err = compileWhole(c.RegexPatterns.Source); err != nil {
		return fmt.Errorf("regex_patterns.source: %w", err)
	}
	if c.targetPattern, err = compileWhole(c.RegexPatterns.Target); err != nil {
		return fmt.Errorf("regex_patterns.target: %w", err)
	}

	return nil
}

// SourcePattern returns the compiled pattern for words being learned
func (c *Content) SourcePattern() *regexp.Regexp {
	return c.sourcePattern
}

// TargetPattern returns the compiled pattern for translations
func (c *Content) TargetPattern() *regexp.Regexp {
	return c.targetPattern
}

func compileWhole(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, fmt.Errorf("pattern is empty")
	}
	return regexp.Compile(`^(?:` + pattern + `)$`)
}
