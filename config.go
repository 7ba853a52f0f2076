package pegmatch

import (
	"fmt"
	"io"
	"sort"
	"strconv"
)

// Config is a map of typed settings read by Grammar and ParseRunner
type Config map[string]*cfgVal

// NewConfig creates a new configuration object primed with all the
// default values expected by both the grammar builder and the
// runner.
func NewConfig() *Config {
	m := make(Config)
	// reject repetitions and joins over rules that can match empty
	// while the grammar is built, instead of failing the run
	m.SetBool("grammar.check_empty_loops", true)
	// build a parse tree out of the nodes created by matchers
	m.SetBool("runner.parse_tree", false)
	// log every matcher activation at trace level
	m.SetBool("runner.trace", false)
	// a run only matches when the root rule consumes all the input
	m.SetBool("runner.full_input", false)
	return &m
}

// Debug writes every setting to `w` sorted by key
func (c *Config) Debug(w io.Writer) {
	fmt.Fprintln(w, "Configuration")

	keys := c.Keys()
	width := 0
	for _, k := range keys {
		width = max(width, len(k))
	}

	for _, k := range keys {
		fmt.Fprint(w, k)
		for i := 0; i < width-len(k); i++ {
			fmt.Fprint(w, " ")
		}
		fmt.Fprint(w, " : ")
		fmt.Fprintln(w, (*c)[k].String())
	}
}

// Keys returns the names of all the settings, sorted
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(*c))
	for k := range *c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Has tells whether the setting `path` exists
func (c *Config) Has(path string) bool {
	_, ok := (*c)[path]
	return ok
}

type cfgValType int

const (
	cfgValType_Undefined cfgValType = iota
	cfgValType_Bool
	cfgValType_Int
	cfgValType_String
)

func (vt cfgValType) String() string {
	return map[cfgValType]string{
		cfgValType_Undefined: "undefined",
		cfgValType_Bool:      "bool",
		cfgValType_Int:       "int",
		cfgValType_String:    "string",
	}[vt]
}

type cfgVal struct {
	typ      cfgValType
	asBool   bool
	asInt    int
	asString string
}

// assignType prevents a setting from changing its type
func (v *cfgVal) assignType(vt cfgValType) {
	if v.typ != vt && v.typ != cfgValType_Undefined {
		panic(fmt.Sprintf("Can't assign `%s` to type `%s`", vt, v.typ))
	}
	v.typ = vt
}

func (v *cfgVal) checkType(vt cfgValType) {
	if v.typ != vt {
		panic(fmt.Sprintf("Can't retrieve `%s` from `%s` variable", vt, v.typ))
	}
}

func (v *cfgVal) String() string {
	switch v.typ {
	case cfgValType_Bool:
		return fmt.Sprintf("%t (bool)", v.asBool)
	case cfgValType_Int:
		return fmt.Sprintf("%d (int)", v.asInt)
	case cfgValType_String:
		return fmt.Sprintf("%s (string)", v.asString)
	case cfgValType_Undefined:
		return "(undefined)"
	default:
		panic(fmt.Sprintf("unknown cfgVal type: %v", v.typ))
	}
}

// set returns the value stored under `path`, creating it when
// needed.  Settings can't change their type once created.
func (c *Config) set(path string, vt cfgValType) *cfgVal {
	val, ok := (*c)[path]
	if !ok {
		val = &cfgVal{}
		(*c)[path] = val
	}
	val.assignType(vt)
	return val
}

func (c *Config) SetBool(path string, v bool)     { c.set(path, cfgValType_Bool).asBool = v }
func (c *Config) SetInt(path string, v int)       { c.set(path, cfgValType_Int).asInt = v }
func (c *Config) SetString(path string, v string) { c.set(path, cfgValType_String).asString = v }

// Parse sets an existing setting from its text form, following the
// type the setting already has
func (c *Config) Parse(path, text string) error {
	val, ok := (*c)[path]
	if !ok {
		return fmt.Errorf("setting `%s` does not exist", path)
	}
	switch val.typ {
	case cfgValType_Bool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return fmt.Errorf("setting `%s`: %w", path, err)
		}
		val.asBool = b
	case cfgValType_Int:
		i, err := strconv.Atoi(text)
		if err != nil {
			return fmt.Errorf("setting `%s`: %w", path, err)
		}
		val.asInt = i
	default:
		val.asString = text
	}
	return nil
}

func (c *Config) GetBool(path string) bool {
	if val, ok := (*c)[path]; ok {
		val.checkType(cfgValType_Bool)
		return val.asBool
	}
	panic(fmt.Sprintf("Bool setting `%s` does not exist", path))
}

func (c *Config) GetInt(path string) int {
	if val, ok := (*c)[path]; ok {
		val.checkType(cfgValType_Int)
		return val.asInt
	}
	panic(fmt.Sprintf("Int setting `%s` does not exist", path))
}

func (c *Config) GetString(path string) string {
	if val, ok := (*c)[path]; ok {
		val.checkType(cfgValType_String)
		return val.asString
	}
	panic(fmt.Sprintf("String setting `%s` does not exist", path))
}
