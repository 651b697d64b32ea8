package survey

// Category is one of the four fixed competency dimensions being assessed.
type Category struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Option is one rung of a question's maturity ladder. Value is the maturity
// level the option represents (1-4) and is unique within a question.
type Option struct {
	Value       int    `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Question is a single assessment item. The options are ordered by value.
type Question struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Category string   `json:"category"`
	Options  []Option `json:"options"`
}

// Catalog holds the immutable question and category content for one
// assessment. It is loaded once from static configuration and never mutated.
type Catalog struct {
	Categories []Category `json:"categories"`
	Questions  []Question `json:"questions"`
}

// CategoryNames returns the category names in declared order. Recommendation
// generation walks categories in exactly this order.
func (c *Catalog) CategoryNames() []string {
	names := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		names[i] = cat.Name
	}
	return names
}

// QuestionsFor returns the questions belonging to the named category,
// preserving catalog order.
func (c *Catalog) QuestionsFor(category string) []Question {
	var out []Question
	for _, q := range c.Questions {
		if q.Category == category {
			out = append(out, q)
		}
	}
	return out
}

// Question returns the question with the given ID, or nil if unknown.
func (c *Catalog) Question(id string) *Question {
	for i := range c.Questions {
		if c.Questions[i].ID == id {
			return &c.Questions[i]
		}
	}
	return nil
}

// HasOptionValue reports whether the question with the given ID offers an
// option with the given value.
func (c *Catalog) HasOptionValue(questionID string, value int) bool {
	q := c.Question(questionID)
	if q == nil {
		return false
	}
	for _, o := range q.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}
