// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

// Package recommend implements the bottle recommendation engine.
//
// The engine combines three kinds of signal over an immutable catalog:
//
//   - Content fit: how well a candidate matches the taste profile derived
//     from the user's own collection (spirit type and brand histograms,
//     price and proof ranges).
//   - Community signals: log-damped popularity, wishlist, vote, and bar
//     counts from the dataset.
//   - Text similarity: a TF-IDF model over bottle descriptive text, used for
//     pairwise "reads like" queries.
//
// Profiles are rebuilt per request and never shared; the catalog store and
// text index are built once and read-only thereafter, so all operations are
// safe for concurrent use. Scoring never produces NaN or Inf: every division
// hazard is floored instead of raised.
package recommend
