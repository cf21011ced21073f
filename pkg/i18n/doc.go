// Package i18n provides the translation engine behind langsync: language
// resolution, asynchronous sequenced language changes with change
// notifications, namespaced bundle loading and key translation.
//
// # Architecture
//
// An Engine is created once per process with NewEngine and a ResourceLoader
// that returns the bundle of a (language, namespace) pair. Ready-made loaders
// read <lang>/<ns>.<ext> from a directory or an fs.FS (embed) with the JSON,
// YAML or TOML parser, or serve bundles from memory (MapLoader). Loaded bundles
// are cached and shared by every instance derived with Engine.Instance, so a
// request handler or an interactive session gets its own resolved language
// without reloading anything.
//
// Language codes are mapped onto the supported set by exact match, then base
// language (en-US -> en), then golang.org/x/text/language matching. Anything
// else resolves to the fallback language.
//
// # Language changes
//
// ChangeLanguage is asynchronous and returns an async.Future. Every call takes
// the next sequence number; a newer call cancels the in-flight load of an older
// one and only the latest request is ever applied, so a slow load can never
// overwrite a newer choice. Superseded futures fail with ErrChangeSuperseded.
// Applied changes are published to subscribers as LanguageChanged events:
//
//	engine, err := i18n.NewEngine(ctx, i18n.NewDirectoryLoader("./locales"), settings)
//	if err != nil {
//		return err
//	}
//
//	sub := engine.Subscribe(ctx)
//	engine.ChangeLanguage(ctx, "fr")
//	msg := <-sub.Receive(ctx) // msg.Data.Language == "fr"
//
// # Detection
//
// Detect walks Settings.DetectionOrder (path segment, page-level language tag,
// cookie, Accept-Language by default) and returns the first supported match.
//
// # Translation
//
//	engine.T("welcome", "name", "John")   // "Hello, John!"
//	engine.T("common:nav.home")          // namespaced, nested key
//	engine.N("items", 3)                 // items_other with {{count}} = 3
//
// Missing keys fall back to the fallback language and then to the key itself.
package i18n
