package logging

import "time"

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field       { return Field{Key: key, Value: value} }
func Int(key string, value int) Field      { return Field{Key: key, Value: value} }
func Int64(key string, value int64) Field  { return Field{Key: key, Value: value} }
func Float64(key string, v float64) Field  { return Field{Key: key, Value: v} }
func Bool(key string, value bool) Field    { return Field{Key: key, Value: value} }
func Strings(key string, v []string) Field { return Field{Key: key, Value: v} }

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Dataset build fields

func Component(name string) Field       { return String("component", name) }
func BuildID(id string) Field           { return String("build_id", id) }
func Stage(name string) Field           { return String("stage", name) }
func LoadName(name string) Field        { return String("load", name) }
func TransformerName(name string) Field { return String("transformer", name) }
func BaseProfile(name string) Field     { return String("base_profile", name) }
func Bus(bus string) Field              { return String("bus", bus) }
func Seed(seed int64) Field             { return Int64("seed", seed) }
func Count(n int) Field                 { return Int("count", n) }
func Path(p string) Field               { return String("path", p) }
func Latency(d time.Duration) Field     { return Duration("latency", d) }
