package cli

import (
	"strconv"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/npillmayer/areamethod"
	"github.com/npillmayer/areamethod/evaluator"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

// appTag identifies configuration and paths of the application.
const appTag = "AREAMETHOD"

// loadConfig is a callback function used by cobra's initialization mechanism.
// Unfortunately we're not allowed a return value.
func loadConfig() {
	k := koanf.New(".") // '.' is hierarchy delimiter
	// Configuration files are located with an application-key of 'AREAMETHOD'
	// and use NestedText-format (nt)
	konf := koanfadapter.New(k, appTag, []string{"nt"})
	konf.InitDefaults()
	if err := mergeFlags(konf); err != nil {
		tracing.Errorf(err.Error())
		areamethod.Exit(1)
	}
	if err := configureTracing(konf); err != nil {
		tracing.Errorf(err.Error())
		areamethod.Exit(1)
	}
	areamethod.Configuration = k // push the configuration to app-global scope
}

func mergeFlags(konf *koanfadapter.KConf) error {
	flags := rootCmd.PersistentFlags()
	err := konf.Koanf().Load(posflag.Provider(flags, ".", konf.Koanf()), nil)
	if err != nil {
		return err
	}
	if logname := konf.GetString("logfile"); logname != "" && logname != "stderr" {
		if strings.Contains(logname, ":/") {
			konf.Set("tracing.destination", logname)
		} else {
			konf.Set("tracing.destination", "file://"+logname)
		}
	}
	return err
}

func configureTracing(konf *koanfadapter.KConf) error {
	if a := konf.GetString("tracing.adapter"); a != "" && a != "go" {
		tracing.Errorf("tracing adapter type '%s' currently not supported", a)
	}
	konf.Set("tracing.adapter", "go") // use Go builtin logging facilities
	paths := locatePaths()
	if dest := konf.GetString("tracing.destination"); dest != "" {
		if !strings.Contains(dest, ":") && paths.LogDir() != "" {
			dest = "file://" + paths.LogDir() + "/" + dest
			konf.Set("tracing.destination", dest)
		}
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(konf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	if konf.Koanf().Bool("debug") {
		for _, key := range []string{"evaluator", "ecs", "problem", "grammar", "cli"} {
			tracing.Select("areamethod." + key).SetTraceLevel(tracing.LevelDebug)
		}
	}
	tracer().Infof("areamethod configured")
	return nil
}

func locatePaths() AppPaths {
	paths, err := DefaultAppPaths(appTag)
	if err != nil {
		tracing.Errorf("cannot configure paths: %v", err)
	}
	return paths
}

// setting returns the value of a command line flag, or else the value of the
// corresponding key in section 'engine' of the configuration file.
func setting(k *koanf.Koanf, key string) string {
	if v := k.String(key); v != "" && v != "0" {
		return v
	}
	return k.String("engine." + key)
}

// engineOptions translates configuration values to options of the engine.
func engineOptions(k *koanf.Koanf) ([]evaluator.Option, error) {
	var opts []evaluator.Option
	if b := setting(k, "backend"); b != "" {
		backend, err := evaluator.ParseBackend(b)
		if err != nil {
			return nil, err
		}
		opts = append(opts, evaluator.WithBackend(backend))
	}
	if n := setting(k, "maxrounds"); n != "" {
		rounds, err := strconv.Atoi(n)
		if err != nil || rounds <= 0 {
			return nil, areamethod.Malformed("maxrounds has to be a positive number, is %q", n)
		}
		opts = append(opts, evaluator.WithMaxRounds(rounds))
	}
	return opts, nil
}
