package performance

// Every benchmark prints KEY=value lines on stdout. Anything else, such as
// XLA or absl log lines, is ignored by the parser.

const mxuScript = `
import time
import jax
import jax.numpy as jnp

n = 4096
x = jnp.ones((n, n), dtype=jnp.bfloat16)
jnp.dot(x, x).block_until_ready()

iterations = 10
start = time.perf_counter()
for _ in range(iterations):
    jnp.dot(x, x).block_until_ready()
elapsed = time.perf_counter() - start

flops = 2 * n ** 3 * iterations / elapsed
print(f"TFLOPS={flops / 1e12:.3f}")
print(f"MXU_UTILIZATION={flops / (PEAK_TFLOPS * 1e12) * 100:.1f}")
`

const hbmScript = `
import time
import jax
import jax.numpy as jnp

size_bytes = 1 << 30
x = jnp.ones(size_bytes // 4, dtype=jnp.float32)
(x + 1).block_until_ready()

iterations = 10
start = time.perf_counter()
for _ in range(iterations):
    (x + 1).block_until_ready()
elapsed = time.perf_counter() - start

# one read and one write per element
print(f"HBM_BANDWIDTH_GBPS={2 * size_bytes * iterations / elapsed / 1e9:.1f}")
`

const latencyScript = `
import time
import jax
import jax.numpy as jnp

devices = jax.devices()
print(f"DEVICES={len(devices)}")
if len(devices) < 2:
    raise SystemExit(0)

x = jax.device_put(jnp.ones(1024), devices[0])
jax.device_put(x, devices[1]).block_until_ready()

iterations = 100
start = time.perf_counter()
for _ in range(iterations):
    jax.device_put(x, devices[1]).block_until_ready()
elapsed = time.perf_counter() - start
print(f"LATENCY_US={elapsed / iterations * 1e6:.1f}")
`

const compileScript = `
import time
import jax
import jax.numpy as jnp

@jax.jit
def model(x):
    for _ in range(10):
        x = jnp.tanh(jnp.dot(x, x.T))
    return x

jax.clear_caches()
x = jnp.ones((512, 512))
start = time.perf_counter()
model(x).block_until_ready()
print(f"COMPILE_SECONDS={time.perf_counter() - start:.2f}")
`

const memoryPressureScript = `
import jax
import jax.numpy as jnp

try:
    stats = jax.devices()[0].memory_stats() or {}
    limit = stats.get("bytes_limit", 0)
    target = int(limit * 0.8) if limit else 2 << 30
    chunk = 256 << 20
    arrays = []
    allocated = 0
    while allocated + chunk <= target:
        arrays.append(jnp.ones(chunk // 4, dtype=jnp.float32).block_until_ready())
        allocated += chunk
    del arrays
    jnp.ones((512 << 20) // 4, dtype=jnp.float32).block_until_ready()
    print(f"ALLOCATED_BYTES={allocated}")
    print("MEMORY_PRESSURE=OK")
except Exception as e:
    print(f"MEMORY_PRESSURE=FAIL {type(e).__name__}: {e}".replace("\n", " "))
`
