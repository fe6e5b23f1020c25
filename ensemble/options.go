package ensemble

// Option configures a RandomForestRegressor.
type Option func(*RandomForestRegressor)

// WithNEstimators sets the number of trees.
func WithNEstimators(n int) Option {
	return func(rf *RandomForestRegressor) {
		rf.NEstimators = n
	}
}

// WithMaxDepth sets the maximum tree depth. Pass -1 for unlimited.
func WithMaxDepth(d int) Option {
	return func(rf *RandomForestRegressor) {
		rf.MaxDepth = d
	}
}

// WithMinSamplesSplit sets the minimum rows required to split a node.
func WithMinSamplesSplit(n int) Option {
	return func(rf *RandomForestRegressor) {
		rf.MinSamplesSplit = n
	}
}

// WithMaxFeatures sets how many features are sampled per split.
// Pass 0 to consider all features.
func WithMaxFeatures(n int) Option {
	return func(rf *RandomForestRegressor) {
		rf.MaxFeatures = n
	}
}

// WithRandomState sets the seed for bootstrap and feature sampling.
func WithRandomState(seed int) Option {
	return func(rf *RandomForestRegressor) {
		rf.RandomState = seed
	}
}

// WithFeatureNames records the training-time feature schema on the model.
func WithFeatureNames(names []string) Option {
	return func(rf *RandomForestRegressor) {
		rf.FeatureNames = names
	}
}
