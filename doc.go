// Package tsplab is a solver laboratory for the symmetric Traveling
// Salesman Problem on 2-D Euclidean point sets.
//
// The core is a successor-array tour representation shared by a portfolio
// of constructive heuristics, local-search refinements, a tour-preserving
// kick perturbation, and two metaheuristics layered above them, plus a
// memetic/genetic engine:
//
//	unionfind/     — weighted union-find with a next-pointer set enumeration
//	pqueue/        — binary-heap priority queue and a bounded top-k wrapper
//	tour/          — successor-array tour representation and its invariants
//	distance/      — lazily-built distance oracle over four metrics
//	constructive/  — nearest-neighbour, GRASP, extra-mileage, MST shortcut
//	refine/        — 2-opt and 3-opt local search, tabu-aware 2-opt pick
//	kick/          — double-bridge-style tour-preserving perturbation
//	vns/           — Variable Neighborhood Search
//	tabusearch/    — Tabu Search with phase-alternating tenure
//	genetic/       — memetic engine with prefix-splicing crossover
//	tracker/       — time-stamped incumbent trajectory
//	mip/           — interface boundary to an external MIP collaborator
//	tsplib/        — TSPLIB instance and tour file parsing
//	report/        — CSV and Graphviz output
//
// Distances, tours, and refinements are pure computation; the only I/O
// boundaries are tsplib (input) and report (output). See cmd/tsplab for
// the command-line front-end.
package tsplab
