package ensemble

import (
	"bytes"
	"encoding/gob"
)

// forestArtifact is the gob wire form of a fitted forest. BaseEstimator
// carries no exported fields, so the regressor implements GobEncode and
// GobDecode itself and restores the fitted state on decode.
type forestArtifact struct {
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MaxFeatures     int
	RandomState     int
	FeatureNames    []string
	Trees           []*Tree
	NFeatures       int
	NSamples        int
}

// GobEncode implements gob.GobEncoder.
func (rf *RandomForestRegressor) GobEncode() ([]byte, error) {
	artifact := forestArtifact{
		NEstimators:     rf.NEstimators,
		MaxDepth:        rf.MaxDepth,
		MinSamplesSplit: rf.MinSamplesSplit,
		MaxFeatures:     rf.MaxFeatures,
		RandomState:     rf.RandomState,
		FeatureNames:    rf.FeatureNames,
		Trees:           rf.Trees,
		NFeatures:       rf.nFeatures,
		NSamples:        rf.nSamples,
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(artifact); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (rf *RandomForestRegressor) GobDecode(data []byte) error {
	var artifact forestArtifact
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&artifact); err != nil {
		return err
	}

	rf.NEstimators = artifact.NEstimators
	rf.MaxDepth = artifact.MaxDepth
	rf.MinSamplesSplit = artifact.MinSamplesSplit
	rf.MaxFeatures = artifact.MaxFeatures
	rf.RandomState = artifact.RandomState
	rf.FeatureNames = artifact.FeatureNames
	rf.Trees = artifact.Trees
	rf.nFeatures = artifact.NFeatures
	rf.nSamples = artifact.NSamples

	if len(rf.Trees) > 0 {
		rf.SetFitted()
	}
	return nil
}
