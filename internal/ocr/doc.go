// Package ocr recognizes roster text using the Tesseract engine.
//
// This package wraps Tesseract (via gosseract/v2) with the narrow interface
// the extractor needs: recognize one preprocessed region image into text
// lines, using a per-column character whitelist and page segmentation mode.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr libtesseract-dev
//   - macOS: brew install tesseract
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//   - Other languages: tesseract-ocr-<lang> packages
//
// Use Probe (surfaced by the doctor command) to check what is installed.
//
// # Recognition Profiles
//
// Roster screenshots carry two very different columns. The nickname column
// allows letters, digits, and the bracket characters clan tags use; the
// points column allows only digits and separators. Restricting the character
// set per column removes most misreads before parsing even starts, and
// disabling Tesseract's dictionary keeps invented player names from being
// "corrected" toward English words.
//
// # Timeouts
//
// Tesseract runs as a blocking C call that cannot be interrupted. Recognize
// honors context deadlines by abandoning the call: the result of an
// abandoned call is discarded when it eventually completes, and the chunk is
// retried at a smaller scale where recognition is cheaper.
//
// # Error Handling
//
// All engine failures are reported as *EngineError with the failing stage.
// If line-box extraction fails (e.g. Tesseract version mismatch), Recognize
// falls back to plain text split on newlines, with row positions unknown.
package ocr
