package cardstream

import "sync"

// Severity indicates how serious a card warning is
type Severity string

const (
	SeverityInfo    Severity = "info"    // Informational (might be expected mid-stream)
	SeverityWarning Severity = "warning" // Potentially problematic
	SeverityError   Severity = "error"   // Likely to break a renderer
)

// WarningCode is a machine-readable identifier for card warnings
type WarningCode string

const (
	// Section warnings
	WarningCodeSectionKindUnknown  WarningCode = "SECTION_KIND_UNKNOWN"
	WarningCodeSectionIDDuplicate  WarningCode = "SECTION_ID_DUPLICATE"
	WarningCodeSectionEmpty        WarningCode = "SECTION_EMPTY"
	WarningCodeSectionSlotMismatch WarningCode = "SECTION_SLOT_MISMATCH"

	// Content warnings
	WarningCodeTitlePending   WarningCode = "TITLE_PENDING"
	WarningCodeContentPending WarningCode = "CONTENT_PENDING"
)

// CardWarning represents a potential issue a renderer might trip over.
// These are informational: the engine never blocks an emission based on
// warnings, because mid-stream cards legitimately contain pending content.
type CardWarning struct {
	Code     WarningCode // Machine-readable code
	Category string      // "section", "content"
	Field    string      // Field that might cause issues
	Value    any         // The potentially problematic value
	Message  string      // Human-readable warning
	Severity Severity    // How serious this warning is
}

// LintRule allows adding custom card checks
type LintRule interface {
	// Name returns a human-readable name for this rule
	Name() string

	// Check inspects a card document and returns warnings
	Check(doc *CardDocument) []CardWarning
}

// LintEngine manages lint rules and executes them
type LintEngine struct {
	rules []LintRule
	mu    sync.RWMutex
}

var (
	globalLintEngine     *LintEngine
	globalLintEngineOnce sync.Once
)

// GetLintEngine returns the global lint engine (singleton)
func GetLintEngine() *LintEngine {
	globalLintEngineOnce.Do(func() {
		globalLintEngine = &LintEngine{
			rules: make([]LintRule, 0),
		}
		globalLintEngine.registerDefaultRules()
	})
	return globalLintEngine
}

func (le *LintEngine) registerDefaultRules() {
	le.AddRule(&SectionKindRule{})
	le.AddRule(&SectionIDRule{})
	le.AddRule(&SectionContentRule{})
	le.AddRule(&PendingContentRule{})
}

// AddRule adds a lint rule to the engine
func (le *LintEngine) AddRule(rule LintRule) {
	le.mu.Lock()
	defer le.mu.Unlock()
	le.rules = append(le.rules, rule)
}

// RemoveRule removes a lint rule by name
func (le *LintEngine) RemoveRule(name string) bool {
	le.mu.Lock()
	defer le.mu.Unlock()

	for i, rule := range le.rules {
		if rule.Name() == name {
			le.rules = append(le.rules[:i], le.rules[i+1:]...)
			return true
		}
	}
	return false
}

// Lint runs all rules and returns warnings
func (le *LintEngine) Lint(doc *CardDocument) []CardWarning {
	le.mu.RLock()
	defer le.mu.RUnlock()

	var warnings []CardWarning
	for _, rule := range le.rules {
		warnings = append(warnings, rule.Check(doc)...)
	}
	return warnings
}

// LintCard returns potential renderer issues with a card document.
// These are INFORMATIONAL - callers can choose to show warnings or ignore
// them. This is the main entry point; it uses the global lint engine.
func LintCard(doc *CardDocument) []CardWarning {
	return GetLintEngine().Lint(doc)
}

// FilterWarningsBySeverity returns warnings matching the specified severities
func FilterWarningsBySeverity(warnings []CardWarning, severities ...Severity) []CardWarning {
	filtered := make([]CardWarning, 0)
	severityMap := make(map[Severity]bool)
	for _, s := range severities {
		severityMap[s] = true
	}

	for _, w := range warnings {
		if severityMap[w.Severity] {
			filtered = append(filtered, w)
		}
	}
	return filtered
}

// FilterWarningsByCode returns warnings matching the specified codes
func FilterWarningsByCode(warnings []CardWarning, codes ...WarningCode) []CardWarning {
	filtered := make([]CardWarning, 0)
	codeMap := make(map[WarningCode]bool)
	for _, c := range codes {
		codeMap[c] = true
	}

	for _, w := range warnings {
		if codeMap[w.Code] {
			filtered = append(filtered, w)
		}
	}
	return filtered
}
