package k8s

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func TestEnsureNamespaceCreates(t *testing.T) {
	client := fake.NewClientset()

	err := EnsureNamespace(context.Background(), client, "onap")
	assert.NoError(t, err)

	ns, err := client.CoreV1().Namespaces().Get(context.Background(), "onap", metav1.GetOptions{})
	assert.NoError(t, err)
	assert.Equal(t, "onap", ns.Name)
}

func TestEnsureNamespaceIdempotent(t *testing.T) {
	client := fake.NewClientset()

	assert.NoError(t, EnsureNamespace(context.Background(), client, "onap"))
	assert.NoError(t, EnsureNamespace(context.Background(), client, "onap"))

	list, err := client.CoreV1().Namespaces().List(context.Background(), metav1.ListOptions{})
	assert.NoError(t, err)
	assert.Len(t, list.Items, 1)
}
