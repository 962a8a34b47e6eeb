package searcher

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant, C = sqrt(2)

const MaxWidth = 64 // Upper bound on children per expansion
