// Package matching is the external API of the super-stable-matching core
// (spec.md §6): build an Instance from two sides' preference lists, then
// lazily derive its rotations, rotation poset, and full set of
// super-stable matchings, or query weak/strong/super stability and
// blocking-pair status directly against a candidate matching.
package matching
