// Package detection estimates layout properties of roster screenshots.
//
// The package analyzes the raw pixel grid before any OCR happens. Its main
// job is probing the vertical row pitch: roster tables render one member per
// row at a fixed rhythm, and that rhythm drives how the screenshot is split
// into chunks.
//
// # Algorithm Overview
//
// Row-pitch probing follows a projection-profile approach:
//
//  1. Binarize at a global Otsu level, treating the minority pixel class as
//     text so both light-on-dark and dark-on-light panels work
//  2. Project ink counts onto the vertical axis (one density per pixel row)
//  3. Segment rows above a density floor into text bands
//  4. Take the median gap between consecutive band starts as the pitch
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// # Confidence Scores
//
// Estimates carry a confidence score (0.0 to 1.0): the fraction of band gaps
// that agree with the median within a fixed tolerance. Clean, evenly spaced
// rosters score 1.0; headers, banners, and partially cropped rows pull the
// score down without moving the median much.
//
// # Limitations
//
// The profile needs at least three text bands to call a rhythm, so tightly
// cropped screenshots with one or two visible rows are rejected. Heavy JPEG
// artifacts or background art with text-like density can distort bands;
// callers should prefer an explicitly configured row height when one is
// known.
package detection
