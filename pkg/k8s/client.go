// Package k8s provides the minimal Kubernetes API access the deployer
// needs: building a client from the usual kubeconfig sources and ensuring
// the target namespace exists before the first release operation.
package k8s

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

var (
	clientOnce   sync.Once
	cachedClient kubernetes.Interface
	clientErr    error
)

// BuildClient creates a Kubernetes client from the given kubeconfig file.
// The client is cached per process; the kubeconfig of the first call wins.
//
// When kubeconfig is empty, discovery falls back to the KUBECONFIG
// environment variable, then ~/.kube/config, then in-cluster configuration.
func BuildClient(kubeconfig string) (kubernetes.Interface, error) {
	clientOnce.Do(func() {
		cachedClient, clientErr = buildClient(kubeconfig)
	})
	return cachedClient, clientErr
}

func buildClient(kubeconfig string) (kubernetes.Interface, error) {
	if kubeconfig == "" {
		kubeconfig = os.Getenv("KUBECONFIG")

		if kubeconfig == "" {
			kubeconfig = filepath.Join(homedir.HomeDir(), ".kube", "config")
			if _, err := os.Stat(kubeconfig); os.IsNotExist(err) {
				kubeconfig = ""
			}
		}
	}

	config, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build kube config: %w", err)
	}

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return client, nil
}
