package params

// ContextOptions is the context retrieval configuration handed to the planning engine.
type ContextOptions struct {
	SemanticK     int     `json:"semantic_k" yaml:"semantic_k"`
	MinSimilarity float64 `json:"min_similarity" yaml:"min_similarity"`
	MaxChars      int     `json:"max_chars" yaml:"max_chars"`
	PerSectionMax int     `json:"per_section_max" yaml:"per_section_max"`
	Strategy      string  `json:"strategy" yaml:"strategy"`
	Label         string  `json:"label,omitempty" yaml:"label,omitempty"`
}

// ProjectContext builds ContextOptions from the context handler's values, falling back to
// schema defaults. It returns nil when --context was not given.
func ProjectContext(ex Extracted) *ContextOptions {
	v := ex[HandlerContext]
	if !v.Flag(FlagContext) {
		return nil
	}
	opts := &ContextOptions{
		SemanticK:     contextDefault(FlagSemanticK).AsInt(),
		MinSimilarity: contextDefault(FlagMinSimilarity).AsFloat(),
		MaxChars:      contextDefault(FlagMaxContextChars).AsInt(),
		PerSectionMax: contextDefault(FlagPerSectionMax).AsInt(),
		Strategy:      contextDefault(FlagContextStrategy).AsString(),
	}
	if n, ok := v.Int(FlagSemanticK); ok {
		opts.SemanticK = n
	}
	if f, ok := v.Float(FlagMinSimilarity); ok {
		opts.MinSimilarity = f
	}
	if n, ok := v.Int(FlagMaxContextChars); ok {
		opts.MaxChars = n
	}
	if n, ok := v.Int(FlagPerSectionMax); ok {
		opts.PerSectionMax = n
	}
	if s, ok := v.String(FlagContextStrategy); ok {
		opts.Strategy = s
	}
	if s, ok := v.String(FlagLabel); ok {
		opts.Label = s
	}
	return opts
}

func contextDefault(name string) Value {
	spec, _ := contextSchema.Lookup(name)
	return spec.Default
}
