// Package services classifies pasted track URLs and talks to the conversion backend.
//
// # Classification
//
// [PatternTable] holds case-insensitive substring markers per platform. Matching is a heuristic by
// contract: any string containing a marker is accepted, so the table is configurable rather than fixed.
//
// # Backend Client
//
// [APIService] implements [Converter] against two endpoints:
//
//	POST /convert/spotify-to-youtube  {"spotify_url": "..."}  → {"youtube_music_url": "..."}
//	POST /convert/youtube-to-spotify  {"youtube_url": "..."}  → {"spotify_url": "..."}
//
// Non-2xx replies carry {"detail": "..."} and surface as [BackendError]. Each call is a single attempt;
// there is no retry or backoff.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrEmptyInput] : blank input
//   - [shared.ErrUnrecognizedURL] : no marker matched
//   - [shared.ErrNetwork] : transport failure or malformed body
//   - [shared.ErrEmptyConversionResult] : 2xx without the expected key
//   - [shared.ErrRateLimited] : client-side limiter refused the request
package services
