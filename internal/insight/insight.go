// Package insight turns points summaries and business analytics into short
// advisory messages. Rules are predicates over the aggregates; nothing is
// learned or fetched.
package insight

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"

	"github.com/google/cel-go/cel"
	"github.com/loyaltyhub/loyalty-points/internal/domain"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

type Audience string

const (
	AudienceCustomer Audience = "customer"
	AudienceBusiness Audience = "business"
)

type Rule struct {
	Audience Audience `yaml:"audience"`
	When     string   `yaml:"when"`
	Message  string   `yaml:"message"`
}

type ruleSet struct {
	Rules []Rule `yaml:"rules"`
}

// Facts is the data a message template renders against.
type Facts struct {
	Points      int
	Visits      int
	Earned      int
	Redeemed    int
	Customers   int
	TotalVisits int
	AvgPoints   float64
	Redemptions int
}

type compiledRule struct {
	when cel.Program
	tmpl *template.Template
	src  Rule
}

type Engine struct {
	customer []compiledRule
	business []compiledRule
}

var funcs = template.FuncMap{
	"sub": func(a, b int) int { return a - b },
}

// Load reads rules from path, or the built-in rules when path is empty.
func Load(path string) (*Engine, error) {
	if path == "" {
		return Parse(defaultRules)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read insight rules: %w", err)
	}
	return Parse(data)
}

func Default() *Engine {
	e, err := Parse(defaultRules)
	if err != nil {
		panic(fmt.Sprintf("built-in insight rules are invalid: %v", err))
	}
	return e
}

func Parse(data []byte) (*Engine, error) {
	var set ruleSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse insight rules: %w", err)
	}

	customerEnv, err := cel.NewEnv(
		cel.Variable("points", cel.IntType),
		cel.Variable("visits", cel.IntType),
		cel.Variable("earned", cel.IntType),
		cel.Variable("redeemed", cel.IntType),
	)
	if err != nil {
		return nil, err
	}
	businessEnv, err := cel.NewEnv(
		cel.Variable("customers", cel.IntType),
		cel.Variable("total_visits", cel.IntType),
		cel.Variable("avg_points", cel.DoubleType),
		cel.Variable("redemptions", cel.IntType),
	)
	if err != nil {
		return nil, err
	}

	e := &Engine{}
	for i, r := range set.Rules {
		var env *cel.Env
		switch r.Audience {
		case AudienceCustomer:
			env = customerEnv
		case AudienceBusiness:
			env = businessEnv
		default:
			return nil, fmt.Errorf("rule %d: unknown audience %q", i, r.Audience)
		}

		cr, err := compile(env, r)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		if r.Audience == AudienceCustomer {
			e.customer = append(e.customer, cr)
		} else {
			e.business = append(e.business, cr)
		}
	}
	return e, nil
}

func compile(env *cel.Env, r Rule) (compiledRule, error) {
	ast, iss := env.Compile(r.When)
	if iss != nil && iss.Err() != nil {
		return compiledRule{}, fmt.Errorf("compile %q: %w", r.When, iss.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return compiledRule{}, fmt.Errorf("%q must evaluate to bool, got %s", r.When, ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return compiledRule{}, fmt.Errorf("program %q: %w", r.When, err)
	}
	tmpl, err := template.New("insight").Funcs(funcs).Option("missingkey=error").Parse(r.Message)
	if err != nil {
		return compiledRule{}, fmt.Errorf("template: %w", err)
	}
	return compiledRule{when: prg, tmpl: tmpl, src: r}, nil
}

func (e *Engine) ForCustomer(s domain.PointsSummary) []string {
	facts := Facts{
		Points:   s.AvailablePoints,
		Visits:   s.TotalVisits,
		Earned:   s.TotalPointsEarned,
		Redeemed: s.TotalPointsRedeemed,
	}
	vars := map[string]any{
		"points":   int64(facts.Points),
		"visits":   int64(facts.Visits),
		"earned":   int64(facts.Earned),
		"redeemed": int64(facts.Redeemed),
	}
	return render(e.customer, vars, facts)
}

func (e *Engine) ForBusiness(a domain.BusinessAnalytics) []string {
	facts := Facts{
		Customers:   a.TotalCustomers,
		TotalVisits: a.TotalVisits,
		AvgPoints:   a.AvgPointsPerVisit,
		Redemptions: a.TotalRedemptions,
	}
	vars := map[string]any{
		"customers":    int64(facts.Customers),
		"total_visits": int64(facts.TotalVisits),
		"avg_points":   facts.AvgPoints,
		"redemptions":  int64(facts.Redemptions),
	}
	return render(e.business, vars, facts)
}

func render(rules []compiledRule, vars map[string]any, facts Facts) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		val, _, err := r.when.Eval(vars)
		if err != nil {
			log.Warn().Err(err).Str("rule", r.src.When).Msg("insight rule failed")
			continue
		}
		if ok, _ := val.Value().(bool); !ok {
			continue
		}
		var buf bytes.Buffer
		if err := r.tmpl.Execute(&buf, facts); err != nil {
			log.Warn().Err(err).Str("rule", r.src.When).Msg("insight template failed")
			continue
		}
		out = append(out, buf.String())
	}
	return out
}
