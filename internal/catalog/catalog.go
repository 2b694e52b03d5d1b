// internal/catalog/catalog.go
//
// The static goal and question catalog for the readiness quiz.
// Nine life goals and three goal-agnostic assessment questions, embedded
// as yaml so deployments can override the copy without a rebuild.

package catalog

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// QuestionsPerGoal is fixed: every goal is assessed with the same three
// yes/no questions.
const QuestionsPerGoal = 3

// Goal ids are stable across deployments because the LMS reports on them.
// Id 4 was retired from the catalog and is intentionally never reused.
const defaultCatalogYAML = `# lifegoals catalog
goals:
  - id: 1
    name: "Child's Education"
    icon: graduation-cap
    description: "Secure your child's academic future"
  - id: 2
    name: "Retirement Planning"
    icon: palmtree
    description: "Enjoy a comfortable retired life"
  - id: 3
    name: "Dream House Purchase"
    icon: castle
    description: "Own your dream house"
  - id: 5
    name: "World Travel"
    icon: globe
    description: "Explore destinations around the globe"
  - id: 6
    name: "Dream Car"
    icon: car
    description: "Drive your dream car"
  - id: 7
    name: "Financial Security"
    icon: wallet
    description: "Become free from financial burdens"
  - id: 8
    name: "Starting a Business"
    icon: rocket
    description: "Launch your entrepreneurial journey"
  - id: 9
    name: "Healthcare Security"
    icon: heart-pulse
    description: "Protect your family's health"
  - id: 10
    name: "Child's Marriage"
    icon: heart-handshake
    description: "Plan for your child's wedding"

questions:
  - id: 1
    text: "Are you aware of which financial planning or investments can help achieve this goal?"
  - id: 2
    text: "Have you done enough financial planning or investments for this goal?"
  - id: 3
    text: "Do you believe you can achieve this life goal?"
`

// Goal is one of the fixed life-planning categories a player can select.
type Goal struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Icon        string `yaml:"icon"`
	Description string `yaml:"description"`
}

// Question is one of the three yes/no prompts asked for every goal.
// Text is written against a generic "this goal" placeholder.
type Question struct {
	ID   int    `yaml:"id"`
	Text string `yaml:"text"`
}

// Catalog is immutable after load.
type Catalog struct {
	Goals     []Goal     `yaml:"goals"`
	Questions []Question `yaml:"questions"`
}

// Default returns the embedded catalog.
func Default() *Catalog {
	cat, err := parse([]byte(defaultCatalogYAML))
	if err != nil {
		// The embedded document is compiled in; failing to parse it is a bug.
		panic(fmt.Sprintf("catalog: embedded default invalid: %v", err))
	}
	return cat
}

// Load reads a catalog override from path, falling back to the embedded
// default when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}
	if len(cat.Goals) == 0 {
		return nil, fmt.Errorf("catalog: no goals defined")
	}
	if len(cat.Questions) != QuestionsPerGoal {
		return nil, fmt.Errorf("catalog: expected %d questions, got %d", QuestionsPerGoal, len(cat.Questions))
	}
	return &cat, nil
}

// GoalByID looks a goal up by its stable id.
func (c *Catalog) GoalByID(id int) (Goal, bool) {
	for _, g := range c.Goals {
		if g.ID == id {
			return g, true
		}
	}
	return Goal{}, false
}

var goalPlaceholder = regexp.MustCompile(`(?i)this (life )?goal`)

// QuestionFor renders a question's text for a specific goal by substituting
// the goal name into the generic placeholder. Display-only; recorded
// responses keep the question index, not the rendered text.
func (c *Catalog) QuestionFor(index int, goal Goal) string {
	if index < 0 || index >= len(c.Questions) {
		return ""
	}
	return goalPlaceholder.ReplaceAllString(c.Questions[index].Text, fmt.Sprintf("%q", goal.Name))
}
