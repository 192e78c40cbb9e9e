package manifest

// yamlIndent matches the two-space style of hand-written manifests.
const yamlIndent = 2
