package reconciler

// TransferTopic exposes transferTopic to external tests.
var TransferTopic = transferTopic
