package catalog

// yamlRecognizer is the intermediate struct for parsing YAML recognizer definitions.
type yamlRecognizer struct {
	ID               string   `yaml:"id"`
	Name             string   `yaml:"name"`
	Detect           string   `yaml:"detect"`
	Emit             string   `yaml:"emit"`
	Priority         int      `yaml:"priority"`
	Description      string   `yaml:"description,omitempty"`
	Examples         []string `yaml:"examples,omitempty"`
	NegativeExamples []string `yaml:"negative_examples,omitempty"`
	Keywords         []string `yaml:"keywords,omitempty"`
	Categories       []string `yaml:"categories,omitempty"`
}

// yamlRecognizersFile represents the top-level structure of a recognizers YAML file.
type yamlRecognizersFile struct {
	Recognizers []yamlRecognizer `yaml:"recognizers"`
}
