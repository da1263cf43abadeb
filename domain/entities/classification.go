package entities

// Classification tags distinguish a generic remote object from the
// specialized views the host knows how to wrap. The tag is assigned by the
// remote runtime when a reference is created and travels back with the
// reference result.
const (
	// ClassificationObject is the default tag for any remote object.
	ClassificationObject = "object"
	// ClassificationDataFrame marks a tabular data view.
	ClassificationDataFrame = "dataframe"
	// ClassificationSessionContext marks the execution context view.
	ClassificationSessionContext = "session_context"
)
