// Package browser fetches fully rendered pages with a headless Chrome
// instance. GoFan schedule pages are client-rendered, so a plain HTTP GET
// returns an empty shell; the fetcher waits for the framework to paint and
// scrolls to trigger lazy loading before capturing the DOM.
package browser
