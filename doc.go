// Package langsync keeps the language of a translation engine and the
// language a client persisted in sync with the language a caller asks for.
//
// Two entry points cover the two places a page is rendered:
//
//   - ResolveServer runs in the rendering environment. If a language is
//     requested and differs from the engine's resolved language, the change is
//     applied before returning. Nothing is persisted.
//   - Session runs on an interactive client. Every Render call is one cycle of
//     an explicit event queue drained by a single dispatcher goroutine: track
//     the engine's resolved language, start an asynchronous change when the
//     requested language changes, then persist the requested language to the
//     cookie jar under path "/" when it differs from the stored value.
//
// The requested language always wins over the resolved or persisted one.
// Without a requested language nothing happens and engine autodetection
// (path, page language tag, cookie, Accept-Language) decides.
//
// Basic usage on a server:
//
//	engine, err := i18n.NewEngine(ctx, i18n.NewFSLoader(locales), settings)
//	if err != nil {
//		return err
//	}
//	router.Use(langsync.Middleware(engine))
//
// And on a client:
//
//	s := langsync.NewSession(ctx, engine.Instance(), cookie.NewMemoryJar())
//	defer s.Close()
//
//	s.Render("fr")
//	_ = s.Settle(ctx) // engine resolved "fr", jar holds i18next=fr
//
// Persistence failures are logged at debug level and never surfaced.
package langsync
