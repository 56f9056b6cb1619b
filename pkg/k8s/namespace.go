package k8s

import (
	"context"
	"fmt"
	"log/slog"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// EnsureNamespace creates the namespace if it does not exist yet.
// Creation is idempotent: an already-existing namespace is not an error.
func EnsureNamespace(ctx context.Context, client kubernetes.Interface, name string) error {
	ns := &corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{Name: name},
	}

	_, err := client.CoreV1().Namespaces().Create(ctx, ns, metav1.CreateOptions{})
	if apierrors.IsAlreadyExists(err) {
		slog.Debug("namespace already exists", "namespace", name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create namespace %s: %w", name, err)
	}

	slog.Info("namespace created", "namespace", name)
	return nil
}
